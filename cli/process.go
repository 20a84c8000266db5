// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package cli

import (
	"io"

	"github.com/pkg/errors"

	"github.com/akx/opustags/ogg"
	"github.com/akx/opustags/opus"
)

// headerPackets is how many packets open the stream: the identification
// header and the comment header.
const headerPackets = 2

// Process runs one edit pass: pages are pulled from reader, the two header
// packets are validated and rebuilt, and everything else is forwarded
// verbatim to writer.
//
// With a nil writer, Process prints the comment list to report instead of
// producing a stream, stopping as soon as the comment header has been read.
// Nothing written to a partially processed output is ever usable on its own;
// the caller decides whether to keep or discard the sink.
func Process(reader *ogg.Reader, writer *ogg.Writer, report io.Writer, opt *Options) error {
	packetCount := 0
	for {
		page, err := reader.ReadPage()
		if errors.Cause(err) == io.EOF {
			break
		} else if err != nil {
			return err
		}

		// Pages past the headers, and pages of other logical streams, are
		// not worth decoding.
		if page.Serial != reader.Serial() || packetCount >= headerPackets {
			if writer != nil {
				if err := writer.WritePage(page); err != nil {
					return err
				}
			}
			continue
		}

		if writer != nil {
			writer.PrepareStream(page.Serial)
		}
		for packetCount < headerPackets {
			pkt, err := reader.ReadPacket()
			if errors.Cause(err) == ogg.ErrEndOfPage {
				break
			} else if err != nil {
				return err
			}
			packetCount++

			switch pkt.PacketNo {
			case 0:
				if err := opus.ValidateHead(pkt); err != nil {
					return err
				}
				if writer != nil {
					if err := writer.WritePacket(pkt); err != nil {
						return err
					}
				}
			case 1:
				tags, err := opus.ParseTags(pkt)
				if err != nil {
					return err
				}
				editTags(tags, opt)
				if writer == nil {
					return PrintComments(tags.Comments, report)
				}
				if err := writer.WritePacket(tags.Render()); err != nil {
					return err
				}
			}
		}
		if writer != nil {
			if err := writer.FlushPage(); err != nil {
				return err
			}
		}
	}

	if packetCount < headerPackets {
		return errors.New("stream ended before both header packets were read")
	}
	return nil
}

// editTags applies the requested comment edits: deletions first, then the
// wholesale replacement, then additions.
func editTags(tags *opus.Tags, opt *Options) {
	if opt.DeleteAll {
		tags.Comments = nil
	} else {
		for _, name := range opt.ToDelete {
			tags.Delete(name)
		}
	}
	if opt.SetAll {
		tags.Comments = append([]string(nil), opt.SetComments...)
	}
	tags.Comments = append(tags.Comments, opt.ToAdd...)
}
