// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package ogg

import (
	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Checksum", func() {
	It("uses the direct RFC 3533 polynomial", func() {
		Expect(crcTable[0]).To(Equal(uint32(0)))
		Expect(crcTable[1]).To(Equal(uint32(0x04C11DB7)))
		Expect(crcUpdate(0, []byte{0, 0, 0, 1})).To(Equal(uint32(0x04C11DB7)))
	})

	It("can be computed incrementally", func() {
		data := fill(300, 5)
		split := crcUpdate(crcUpdate(0, data[:100]), data[100:])
		Expect(split).To(Equal(crcUpdate(0, data)))
	})
})

var _ = Describe("Segment tables", func() {
	DescribeTable("lace packet sizes",
		func(size int, expected []byte) {
			Expect(segmentTable(size)).To(Equal(expected))
		},
		Entry("empty packet", 0, []byte{0}),
		Entry("one byte", 1, []byte{1}),
		Entry("largest single segment", 254, []byte{254}),
		Entry("exactly one full segment", 255, []byte{255, 0}),
		Entry("one byte over", 256, []byte{255, 1}),
		Entry("two full segments", 510, []byte{255, 255, 0}),
		Entry("spanning three segments", 600, []byte{255, 255, 90}),
	)
})

var _ = Describe("Page parsing", func() {
	const serial = uint32(0x12345678)

	Context("with a well-formed page", func() {
		var (
			payload []byte
			raw     []byte
		)

		BeforeEach(func() {
			payload = fill(3+255+2, 1)
			raw = rawPage(flagBOS|flagEOS, 42, serial, 7, []byte{3, 255, 2}, payload)
		})

		It("decodes every field", func() {
			page, consumed, err := parsePage(raw)
			Expect(err).ToNot(HaveOccurred())
			Expect(consumed).To(Equal(len(raw)))

			Expect(page.Version).To(BeZero())
			Expect(page.GranulePosition).To(Equal(int64(42)))
			Expect(page.Serial).To(Equal(serial))
			Expect(page.Sequence).To(Equal(uint32(7)))
			Expect(page.Segments).To(Equal([]byte{3, 255, 2}))
			Expect(page.Payload).To(Equal(payload))
			Expect(page.Raw).To(Equal(raw))

			Expect(page.BOS()).To(BeTrue())
			Expect(page.EOS()).To(BeTrue())
			Expect(page.Continued()).To(BeFalse())
		})

		It("stops at the page boundary when more data follows", func() {
			next := rawPage(0, -1, serial, 8, []byte{1}, []byte{0xAA})
			page, consumed, err := parsePage(append(append([]byte(nil), raw...), next...))
			Expect(err).ToNot(HaveOccurred())
			Expect(consumed).To(Equal(len(raw)))
			Expect(page.Raw).To(Equal(raw))
		})

		It("asks for more data while the page is incomplete", func() {
			for _, cut := range []int{1, headerSize - 1, headerSize, headerSize + 2, len(raw) - 1} {
				page, consumed, err := parsePage(raw[:cut])
				Expect(errors.Cause(err)).To(Equal(errNeedMore), "cut at %d", cut)
				Expect(page).To(BeNil())
				Expect(consumed).To(BeZero())
			}
		})
	})

	It("decodes a page with no segments", func() {
		raw := rawPage(0, -1, serial, 3, nil, nil)
		page, consumed, err := parsePage(raw)
		Expect(err).ToNot(HaveOccurred())
		Expect(consumed).To(Equal(headerSize))
		Expect(page.Segments).To(BeEmpty())
		Expect(page.Payload).To(BeEmpty())
		Expect(page.GranulePosition).To(Equal(int64(-1)))
	})

	DescribeTable("rejects corrupt pages",
		func(mutate func([]byte), sentinel error) {
			raw := rawPage(0, 0, serial, 0, []byte{4}, []byte("data"))
			mutate(raw)
			page, _, err := parsePage(raw)
			Expect(errors.Cause(err)).To(Equal(sentinel))
			Expect(page).To(BeNil())
		},
		Entry("bad capture pattern",
			func(raw []byte) { raw[0] = 'X' }, ErrInvalidPage),
		Entry("unsupported structure version",
			func(raw []byte) { raw[4] = 1 }, ErrInvalidPage),
		Entry("corrupted checksum field",
			func(raw []byte) { raw[crcOffset] ^= 0xFF }, ErrBadCRC),
		Entry("corrupted payload",
			func(raw []byte) { raw[len(raw)-1] ^= 0x01 }, ErrBadCRC),
		Entry("corrupted lacing value",
			func(raw []byte) { raw[headerSize] = 3 }, ErrBadCRC),
	)
})
