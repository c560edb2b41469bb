package api

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestViewHost(t *testing.T) {
	Convey("Test Config.ViewHost", t, func() {
		Convey("A bare port borrows localhost", func() {
			config := &Config{Listen: ":8000"}
			So(config.ViewHost(), ShouldEqual, "localhost:8000")
		})

		Convey("A full address stays as is", func() {
			config := &Config{Listen: "0.0.0.0:9000"}
			So(config.ViewHost(), ShouldEqual, "0.0.0.0:9000")
		})
	})
}
