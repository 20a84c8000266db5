// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// maxCommentLine bounds a single comment read from a comment list. Comment
// values can be long, but a line this size is not a tag.
const maxCommentLine = 1 << 20

// PrintComments writes comments to w, one per line.
func PrintComments(comments []string, w io.Writer) error {
	for _, c := range comments {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return errors.Wrap(err, "writing comments")
		}
	}
	return nil
}

// ReadComments decodes a newline-separated comment list from r, the inverse
// of PrintComments.
//
// Empty lines are skipped. Lines without a '=' separator cannot be tags;
// they are skipped with a warning on report rather than failing the whole
// list.
func ReadComments(r io.Reader, report io.Writer) ([]string, error) {
	var comments []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxCommentLine)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if !strings.ContainsRune(line, '=') {
			fmt.Fprintf(report, "warning: skipping malformed tag %q\n", line)
			continue
		}
		comments = append(comments, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading comments")
	}
	return comments, nil
}
