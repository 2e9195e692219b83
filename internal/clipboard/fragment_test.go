package clipboard

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/imgtext/internal/capture"
)

var _ = Describe("FromHTML", func() {
	var (
		fragment string
		img      capture.Image
		err      error
	)

	JustBeforeEach(func() {
		img, err = FromHTML(fragment)
	})

	When("the fragment holds a png data URI", func() {
		BeforeEach(func() {
			fragment = `<img src='data:image/png;base64,AAAA'>`
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should decode the payload", func() {
			Expect(img.Data).To(Equal([]byte{0x00, 0x00, 0x00}))
		})

		It("should tag the image as png", func() {
			Expect(img.MIMEType).To(Equal("image/png"))
		})

		It("should name the image pasted-image.png", func() {
			Expect(img.Name).To(Equal("pasted-image.png"))
		})
	})

	When("the fragment holds a jpeg data URI", func() {
		BeforeEach(func() {
			fragment = `<div><span>copied</span><img alt="x" src="data:image/jpeg;base64,/9j/"></div>`
		})

		It("should tag the image as jpeg", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(img.MIMEType).To(Equal("image/jpeg"))
			Expect(img.Name).To(Equal("pasted-image.png"))
			Expect(img.Data).To(Equal([]byte{0xff, 0xd8, 0xff}))
		})
	})

	When("the payload is wrapped over several lines", func() {
		BeforeEach(func() {
			fragment = "<img src=\"data:image/png;base64,AA\nAA\">"
		})

		It("should ignore the whitespace", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(img.Data).To(Equal([]byte{0x00, 0x00, 0x00}))
		})
	})

	When("several images are embedded", func() {
		BeforeEach(func() {
			fragment = `<img src="https://example.com/a.png">` +
				`<img src="data:image/gif;base64,R0lG">` +
				`<img src="data:image/jpeg;base64,/9j/">` +
				`<img src="data:image/png;base64,AAAA">`
		})

		It("should take the first accepted one", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(img.MIMEType).To(Equal("image/jpeg"))
		})
	})

	When("the fragment has no image markup", func() {
		BeforeEach(func() {
			fragment = `<p>just some text</p>`
		})

		It("returns ErrNoImage", func() {
			Expect(err).To(MatchError(ErrNoImage))
		})
	})

	When("the fragment is empty", func() {
		BeforeEach(func() {
			fragment = ""
		})

		It("returns ErrNoImage", func() {
			Expect(err).To(MatchError(ErrNoImage))
		})
	})

	When("the payload is not valid base64", func() {
		BeforeEach(func() {
			fragment = `<img src="data:image/png;base64,@@@">`
		})

		It("returns a decode error", func() {
			Expect(err).To(HaveOccurred())
			Expect(err).NotTo(MatchError(ErrNoImage))
		})
	})
})
