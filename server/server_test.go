package server

import (
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/xstupi00/line-of-sight/internal/orchestrator"
)

func TestServeIndex(t *testing.T) {
	Convey("Given a server", t, func() {
		snap := make(chan orchestrator.Snapshot)
		s := New(":0", snap)

		Convey("serveIndex returns the bootstrap page", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)

			s.serveIndex(rec, req)

			So(rec.Code, ShouldEqual, 200)
			So(rec.Body.String(), ShouldContainSubstring, "waiting for scan progress")
			So(rec.Header().Get("Content-Type"), ShouldEqual, "text/html")
		})
	})
}
