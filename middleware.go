package tagcmp

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"
)

// Middleware runs HTML responses from next through the registry.
//
// The response is buffered in full. HEAD requests, responses that are not
// text/html, and responses that are already content-encoded are passed
// through untouched. When
// rewriting fails the buffered page is discarded and OnError writes the
// response instead.
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", handleIndex)
//	http.ListenAndServe(":8080", reg.Middleware(mux))
func (reg *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HEAD has no body; keep the handler's Content-Length.
		if r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		bw := &bufferedWriter{ResponseWriter: w}
		next.ServeHTTP(bw, r)

		status := bw.status
		if status == 0 {
			status = http.StatusOK
		}

		if !isHTMLResponse(w.Header(), bw.buf.Bytes()) {
			w.WriteHeader(status)
			_, _ = bw.buf.WriteTo(w)
			return
		}

		var out bytes.Buffer
		if err := reg.Rewrite(r.Context(), &bw.buf, &out); err != nil {
			reg.logger.Error("tagcmp: rewrite failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
			w.Header().Del("Content-Length")
			reg.OnError(w, r, err)
			return
		}

		w.Header().Set("Content-Length", strconv.Itoa(out.Len()))
		w.WriteHeader(status)
		_, _ = out.WriteTo(w)
	})
}

// bufferedWriter holds a handler's response until it can be rewritten.
type bufferedWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (bw *bufferedWriter) WriteHeader(code int) {
	if bw.status == 0 {
		bw.status = code
	}
}

func (bw *bufferedWriter) Write(p []byte) (int, error) {
	if bw.status == 0 {
		bw.status = http.StatusOK
	}
	return bw.buf.Write(p)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (bw *bufferedWriter) Unwrap() http.ResponseWriter {
	return bw.ResponseWriter
}

func isHTMLResponse(h http.Header, body []byte) bool {
	if h.Get("Content-Encoding") != "" {
		return false
	}
	ct := h.Get("Content-Type")
	if ct == "" && len(body) == 0 {
		return false
	}
	if ct == "" {
		ct = http.DetectContentType(body)
		h.Set("Content-Type", ct)
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "text/html"
}
