package server_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/zombor/imgtext/internal/clipboard"
	"github.com/zombor/imgtext/internal/recognition"
	"github.com/zombor/imgtext/internal/server"
	"github.com/zombor/imgtext/internal/session"
)

// fakeEngine reports progress and returns canned text
type fakeEngine struct {
	mu        sync.Mutex
	text      string
	err       error
	languages []string
	bounds    []image.Rectangle
}

func (e *fakeEngine) Recognize(ctx context.Context, img image.Image, language string, progress recognition.ProgressFunc) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.languages = append(e.languages, language)
	e.bounds = append(e.bounds, img.Bounds())
	progress(recognition.Progress{Status: "recognizing text", Progress: 0.5})
	if e.err != nil {
		return "", e.err
	}
	return e.text, nil
}

func (e *fakeEngine) Close() error {
	return nil
}

type state struct {
	State   session.Snapshot `json:"state"`
	Notices []string         `json:"notices"`
	Error   string           `json:"error"`
}

var _ = Describe("Integration", func() {
	var (
		tempDir  string
		engine   *fakeEngine
		copied   []string
		copyErr  error
		ghServer *ghttp.Server
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "imgtext-test-*")
		Expect(err).NotTo(HaveOccurred())

		engine = &fakeEngine{text: "Hello\nWorld"}
		copied = nil
		copyErr = nil

		scratch, err := clipboard.NewScratch(tempDir)
		Expect(err).NotTo(HaveOccurred())
		legacy := clipboard.NewLegacyWithCopier(scratch, func(text string) error {
			if copyErr != nil {
				return copyErr
			}
			copied = append(copied, text)
			return nil
		}, false)

		manager := session.NewManager(session.Deps{
			Recognizer: recognition.NewRecognizer(engine, ""),
			Reader:     clipboard.NewReader(nil),
			Copier:     clipboard.NewCopier(nil, legacy),
		}, time.Hour)
		srv := server.NewServer(manager, server.BasicAuth{}, 0)

		// Session ids are random; route every path to the server
		ghServer = ghttp.NewServer()
		ghServer.RouteToHandler("GET", regexp.MustCompile(`.*`), srv.ServeHTTP)
		ghServer.RouteToHandler("POST", regexp.MustCompile(`.*`), srv.ServeHTTP)
	})

	AfterEach(func() {
		ghServer.Close()
		os.RemoveAll(tempDir)
	})

	pngData := func(w, h int) []byte {
		var buf bytes.Buffer
		Expect(png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)))).To(Succeed())
		return buf.Bytes()
	}

	read := func(resp *http.Response) state {
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		var s state
		Expect(json.Unmarshal(body, &s)).To(Succeed())
		return s
	}

	newSession := func() string {
		resp, err := http.Post(ghServer.URL()+"/api/sessions", "application/json", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		id := read(resp).State.ID
		Expect(id).NotTo(BeEmpty())
		return id
	}

	action := func(id, name, contentType string, body io.Reader) *http.Response {
		resp, err := http.Post(ghServer.URL()+"/api/sessions/"+id+"/"+name, contentType, body)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	uploadBody := func(filename string, data []byte) (string, io.Reader) {
		var b bytes.Buffer
		writer := multipart.NewWriter(&b)
		part, err := writer.CreateFormFile("file", filename)
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(writer.Close()).To(Succeed())
		return writer.FormDataContentType(), &b
	}

	It("converts a chosen file and copies the text through the legacy path", func() {
		id := newSession()

		contentType, body := uploadBody("scan.png", pngData(8, 6))
		resp := action(id, "convert", contentType, body)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		s := read(resp)
		Expect(s.State.Text).To(Equal("Hello\nWorld"))
		Expect(s.State.Busy).To(BeFalse())

		Expect(engine.languages).To(Equal([]string{recognition.DefaultLanguage}))
		Expect(engine.bounds).To(Equal([]image.Rectangle{image.Rect(0, 0, 8, 6)}))

		resp = action(id, "copy", "application/json", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(read(resp).Notices).To(Equal([]string{session.MsgCopied}))
		Expect(copied).To(Equal([]string{"Hello\nWorld"}))

		entries, err := os.ReadDir(tempDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("recognizes an image pasted as an HTML fragment", func() {
		id := newSession()

		fragment := `<div><img alt="x" src="data:image/png;base64,` +
			base64.StdEncoding.EncodeToString(pngData(3, 3)) + `"></div>`
		payload, err := json.Marshal(map[string]string{"html": fragment})
		Expect(err).NotTo(HaveOccurred())

		resp := action(id, "paste", "application/json", bytes.NewReader(payload))
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(read(resp).State.Text).To(Equal("Hello\nWorld"))
	})

	It("keeps the previous text when a later recognition fails", func() {
		id := newSession()

		contentType, body := uploadBody("first.png", pngData(2, 2))
		Expect(read(action(id, "convert", contentType, body)).State.Text).To(Equal("Hello\nWorld"))

		engine.mu.Lock()
		engine.err = errors.New("model missing")
		engine.mu.Unlock()

		contentType, body = uploadBody("second.png", pngData(2, 2))
		resp := action(id, "convert", contentType, body)
		Expect(resp.StatusCode).To(Equal(http.StatusUnprocessableEntity))
		s := read(resp)
		Expect(s.State.Text).To(Equal("Hello\nWorld"))
		Expect(s.State.Busy).To(BeFalse())
		Expect(s.Notices).To(Equal([]string{session.MsgRecognitionFailed}))
	})

	It("reports a failed copy", func() {
		id := newSession()
		copyErr = errors.New("no copy command")

		resp := action(id, "copy", "application/json", strings.NewReader(""))
		Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
		Expect(read(resp).Notices).To(Equal([]string{session.MsgCopyFailed}))
	})

	It("keeps sessions independent", func() {
		first := newSession()
		second := newSession()
		Expect(first).NotTo(Equal(second))

		contentType, body := uploadBody("scan.png", pngData(4, 4))
		Expect(read(action(first, "convert", contentType, body)).State.Text).To(Equal("Hello\nWorld"))

		resp, err := http.Get(ghServer.URL() + "/api/sessions/" + second)
		Expect(err).NotTo(HaveOccurred())
		Expect(read(resp).State.Text).To(BeEmpty())
	})
})
