package config

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
)

func validConfig() *Config {
	c := DefaultConfig()
	c.NVPUsername = "username"
	c.NVPPassword = "password"
	c.NVPSignature = "signature"
	c.OAuthClientID = "client"
	c.OAuthSecret = "secret"
	return c
}

func TestUnitGet(t *testing.T) {

	Convey("Config already defined", t, func() {
		cfg = DefaultConfig()
		config, err := Get()
		So(config, ShouldResemble, DefaultConfig())
		So(err, ShouldBeNil)
	})

	Convey("Successful get config", t, func() {
		cfg = nil // reset after previous tests
		config, err := Get()
		So(config, ShouldResemble, DefaultConfig())
		So(err, ShouldBeNil)
	})

}

func TestUnitValidate(t *testing.T) {

	Convey("Valid config", t, func() {
		So(validConfig().Validate(), ShouldBeNil)
	})

	Convey("Default config is missing credentials", t, func() {
		err := DefaultConfig().Validate()
		So(err, ShouldNotBeNil)
		So(errors.Is(err, models.ErrConfiguration), ShouldBeTrue)

		var configErr *models.ConfigurationError
		So(errors.As(err, &configErr), ShouldBeTrue)
		So(configErr.Fields, ShouldResemble, []string{"NVPUsername", "NVPPassword", "NVPSignature", "OAuthClientID", "OAuthSecret"})
	})

	Convey("Missing endpoint is reported", t, func() {
		c := validConfig()
		c.LiveRestEndpoint = ""
		err := c.Validate()

		var configErr *models.ConfigurationError
		So(errors.As(err, &configErr), ShouldBeTrue)
		So(configErr.Fields, ShouldResemble, []string{"LiveRestEndpoint"})
		So(err.Error(), ShouldContainSubstring, "LiveRestEndpoint")
	})

	Convey("Invalid currency length", t, func() {
		c := validConfig()
		c.DefaultCurrency = "POUNDS"
		err := c.Validate()
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "DefaultCurrency")
	})
}

func TestUnitRedirectErrorCodes(t *testing.T) {

	Convey("Comma separated codes are trimmed into a set", t, func() {
		c := validConfig()
		c.RedirectErrors = "10486, 10422,,10417 "
		codes := c.RedirectErrorCodes()
		So(codes, ShouldHaveLength, 3)
		So(codes, ShouldContainKey, "10486")
		So(codes, ShouldContainKey, "10422")
		So(codes, ShouldContainKey, "10417")
	})

	Convey("Empty list", t, func() {
		c := validConfig()
		c.RedirectErrors = ""
		So(c.RedirectErrorCodes(), ShouldBeEmpty)
	})
}
