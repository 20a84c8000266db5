// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package opus

import (
	"encoding/binary"

	"github.com/akx/opustags/ogg"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Comment header parsing", func() {
	It("decodes a well-formed packet", func() {
		tags, err := ParseTags(&ogg.Packet{Bytes: standardTags()})
		Expect(err).ToNot(HaveOccurred())

		Expect(tags.Vendor).To(Equal("opustags test packet"))
		Expect(tags.Comments).To(Equal([]string{"TITLE=Foo", "ARTIST=Bar"}))
		Expect(tags.ExtraData).To(BeEmpty())
	})

	It("decodes a minimal packet", func() {
		data := []byte("OpusTags\x00\x00\x00\x00\x00\x00\x00\x00")
		tags, err := ParseTags(&ogg.Packet{Bytes: data})
		Expect(err).ToNot(HaveOccurred())

		Expect(tags.Vendor).To(BeEmpty())
		Expect(tags.Comments).To(BeEmpty())
		Expect(tags.ExtraData).To(BeEmpty())
	})

	It("decodes a zero-length comment", func() {
		data := []byte("OpusTags\x00\x00\x00\x00\x01\x00\x00\x00\x00\x00\x00\x00")
		tags, err := ParseTags(&ogg.Packet{Bytes: data})
		Expect(err).ToNot(HaveOccurred())
		Expect(tags.Comments).To(Equal([]string{""}))
	})

	It("preserves unidentified bytes after the comments", func() {
		data := append(standardTags(), "\x00hello"...)
		tags, err := ParseTags(&ogg.Packet{Bytes: data})
		Expect(err).ToNot(HaveOccurred())
		Expect(tags.ExtraData).To(Equal([]byte("\x00hello")))
	})

	It("owns its data independently of the packet", func() {
		data := append(standardTags(), "\x00hello"...)
		tags, err := ParseTags(&ogg.Packet{Bytes: data})
		Expect(err).ToNot(HaveOccurred())

		for i := range data {
			data[i] = 0xFF
		}
		Expect(tags.Vendor).To(Equal("opustags test packet"))
		Expect(tags.Comments).To(Equal([]string{"TITLE=Foo", "ARTIST=Bar"}))
		Expect(tags.ExtraData).To(Equal([]byte("\x00hello")))
	})

	DescribeTable("rejects truncated packets",
		func(mutate func([]byte) []byte, expected error) {
			data := mutate(standardTags())
			tags, err := ParseTags(&ogg.Packet{Bytes: data})
			Expect(err).To(Equal(expected))
			Expect(tags).To(BeNil())
		},
		Entry("empty packet",
			func(d []byte) []byte { return nil },
			ErrCutMagicNumber),
		Entry("magic number cut short",
			func(d []byte) []byte { return d[:7] },
			ErrCutMagicNumber),
		Entry("wrong magic number",
			func(d []byte) []byte { d[0] = 'X'; return d },
			ErrBadMagicNumber),
		Entry("nothing after the magic number",
			func(d []byte) []byte { return d[:8] },
			ErrCutVendorLength),
		Entry("vendor length cut short",
			func(d []byte) []byte { return d[:11] },
			ErrCutVendorLength),
		Entry("vendor runs past the end",
			func(d []byte) []byte {
				binary.LittleEndian.PutUint32(d[8:], uint32(len(d)-12+1))
				return d
			},
			ErrCutVendorData),
		Entry("vendor length near the uint32 maximum",
			func(d []byte) []byte {
				binary.LittleEndian.PutUint32(d[8:], 0xFFFFFFFF)
				return d
			},
			ErrCutVendorData),
		Entry("vendor eats into the comment count",
			func(d []byte) []byte {
				binary.LittleEndian.PutUint32(d[8:], uint32(len(d)-12-3))
				return d
			},
			ErrCutCommentCount),
		Entry("comment count one too high",
			func(d []byte) []byte {
				binary.LittleEndian.PutUint32(d[32:], 3)
				return d
			},
			ErrCutCommentLength),
		Entry("comment count near the uint32 maximum",
			func(d []byte) []byte {
				binary.LittleEndian.PutUint32(d[32:], 0xFFFFFFFF)
				return d
			},
			ErrCutCommentLength),
		Entry("comment longer than the packet",
			func(d []byte) []byte {
				binary.LittleEndian.PutUint32(d[49:], 11)
				return d
			},
			ErrCutCommentData),
		Entry("comment length near the uint32 maximum",
			func(d []byte) []byte {
				binary.LittleEndian.PutUint32(d[49:], 0xFFFFFFFF)
				return d
			},
			ErrCutCommentData),
		Entry("comment data cut short",
			func(d []byte) []byte { return d[:len(d)-1] },
			ErrCutCommentData),
	)
})

var _ = Describe("Comment header rendering", func() {
	It("reproduces its source byte for byte", func() {
		tags, err := ParseTags(&ogg.Packet{Bytes: standardTags()})
		Expect(err).ToNot(HaveOccurred())

		pkt := tags.Render()
		Expect(pkt.Bytes).To(Equal(standardTags()))
	})

	It("stamps the comment header's stream position", func() {
		tags, err := ParseTags(&ogg.Packet{Bytes: standardTags()})
		Expect(err).ToNot(HaveOccurred())

		pkt := tags.Render()
		Expect(pkt.PacketNo).To(Equal(int64(1)))
		Expect(pkt.GranulePos).To(Equal(int64(0)))
		Expect(pkt.BOS).To(BeFalse())
		Expect(pkt.EOS).To(BeFalse())
	})

	It("reproduces extra data across an edit", func() {
		data := append(standardTags(), "\x00hello"...)
		tags, err := ParseTags(&ogg.Packet{Bytes: data})
		Expect(err).ToNot(HaveOccurred())

		tags.Delete("TITLE")
		tags.Comments = append(tags.Comments, "ALBUM=Baz")

		reparsed, err := ParseTags(tags.Render())
		Expect(err).ToNot(HaveOccurred())
		Expect(reparsed.Comments).To(Equal([]string{"ARTIST=Bar", "ALBUM=Baz"}))
		Expect(reparsed.ExtraData).To(Equal([]byte("\x00hello")))
	})

	It("renders an empty header", func() {
		var tags Tags
		pkt := tags.Render()
		Expect(pkt.Bytes).To(Equal([]byte("OpusTags\x00\x00\x00\x00\x00\x00\x00\x00")))
	})
})

var _ = Describe("Comment deletion", func() {
	parse := func() *Tags {
		tags, err := ParseTags(&ogg.Packet{Bytes: standardTags()})
		Expect(err).ToNot(HaveOccurred())
		return tags
	}

	It("removes a comment by name", func() {
		tags := parse()
		tags.Delete("TITLE")
		Expect(tags.Comments).To(Equal([]string{"ARTIST=Bar"}))
	})

	It("removes every match", func() {
		tags := &Tags{Comments: []string{"A=1", "A=2", "B=3"}}
		tags.Delete("A")
		Expect(tags.Comments).To(Equal([]string{"B=3"}))
	})

	It("matches case-sensitively", func() {
		tags := parse()
		tags.Delete("title")
		Expect(tags.Comments).To(Equal([]string{"TITLE=Foo", "ARTIST=Bar"}))
	})

	It("does not match on a name prefix", func() {
		tags := parse()
		tags.Delete("TITL")
		Expect(tags.Comments).To(Equal([]string{"TITLE=Foo", "ARTIST=Bar"}))
	})

	It("requires the separator", func() {
		tags := &Tags{Comments: []string{"TITLE"}}
		tags.Delete("TITLE")
		Expect(tags.Comments).To(Equal([]string{"TITLE"}))
	})

	It("removes a comment with an empty value", func() {
		tags := &Tags{Comments: []string{"TITLE="}}
		tags.Delete("TITLE")
		Expect(tags.Comments).To(BeEmpty())
	})

	It("tolerates an empty header", func() {
		var tags Tags
		tags.Delete("TITLE")
		Expect(tags.Comments).To(BeEmpty())
	})
})
