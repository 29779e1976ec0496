package emit

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCSV(t *testing.T) {
	Convey("Given a visibility vector", t, func() {
		r := []bool{false, true, false, false, false, false}
		var buf bytes.Buffer

		err := CSV(&buf, r)
		So(err, ShouldBeNil)
		So(buf.String(), ShouldEqual, "_,v,u,u,u,u\n")
	})

	Convey("Given an empty vector", t, func() {
		var buf bytes.Buffer
		err := CSV(&buf, nil)
		So(err, ShouldNotBeNil)
	})
}
