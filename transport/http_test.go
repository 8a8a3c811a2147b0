package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/companieshouse/paypal.api.ch.gov.uk/config"
)

const testURL = "https://api-3t.sandbox.paypal.com/nvp"

func createHTTPClient(retryMax int) *HTTPClient {
	cfg := config.DefaultConfig()
	cfg.TransportRetryMax = retryMax
	c := NewHTTPClient(cfg)
	c.client.RetryWaitMin = 0
	c.client.RetryWaitMax = 0
	return c
}

func TestUnitHTTPClientPost(t *testing.T) {
	c := createHTTPClient(0)
	httpmock.ActivateNonDefault(c.client.HTTPClient)
	defer httpmock.DeactivateAndReset()

	Convey("Body, content type, headers and basic auth are sent", t, func() {
		httpmock.Reset()
		httpmock.RegisterResponder(http.MethodPost, testURL, func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			user, pass, ok := req.BasicAuth()
			So(ok, ShouldBeTrue)
			So(user, ShouldEqual, "client")
			So(pass, ShouldEqual, "secret")
			So(string(body), ShouldEqual, "METHOD=SetExpressCheckout")
			So(req.Header.Get("Content-Type"), ShouldEqual, "application/x-www-form-urlencoded")
			So(req.Header.Get("X-Test"), ShouldEqual, "yes")
			resp := httpmock.NewStringResponse(http.StatusOK, "ACK=Success")
			resp.Header = http.Header{"Paypal-Debug-Id": []string{"abc"}}
			return resp, nil
		})

		resp, err := c.Post(context.Background(), testURL, []byte("METHOD=SetExpressCheckout"), RequestOptions{
			ContentType: "application/x-www-form-urlencoded",
			Headers:     map[string]string{"X-Test": "yes"},
			Auth:        BasicAuth{Username: "client", Password: "secret"},
		})
		So(err, ShouldBeNil)
		So(resp.StatusCode, ShouldEqual, http.StatusOK)
		So(string(resp.Body), ShouldEqual, "ACK=Success")
		So(resp.Headers["Paypal-Debug-Id"], ShouldEqual, "abc")
	})

	Convey("Error statuses are returned as responses", t, func() {
		httpmock.Reset()
		httpmock.RegisterResponder(http.MethodPost, testURL, httpmock.NewStringResponder(http.StatusBadRequest, `{"name":"VALIDATION_ERROR","message":"Invalid request"}`))

		resp, err := c.Post(context.Background(), testURL, []byte("{}"), RequestOptions{})
		So(err, ShouldBeNil)
		So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		So(string(resp.Body), ShouldContainSubstring, "VALIDATION_ERROR")
	})

	Convey("Server errors keep their body when retries are off", t, func() {
		httpmock.Reset()
		calls := 0
		httpmock.RegisterResponder(http.MethodPost, testURL, func(req *http.Request) (*http.Response, error) {
			calls++
			return httpmock.NewStringResponse(http.StatusInternalServerError, "unavailable"), nil
		})

		resp, err := c.Post(context.Background(), testURL, nil, RequestOptions{})
		So(err, ShouldBeNil)
		So(resp.StatusCode, ShouldEqual, http.StatusInternalServerError)
		So(string(resp.Body), ShouldEqual, "unavailable")
		So(calls, ShouldEqual, 1)
	})

	Convey("Connectivity problems are errors", t, func() {
		httpmock.Reset()
		httpmock.RegisterResponder(http.MethodPost, testURL, httpmock.NewErrorResponder(errors.New("connection refused")))

		resp, err := c.Post(context.Background(), testURL, nil, RequestOptions{})
		So(resp, ShouldBeNil)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "connection refused")
	})
}

func TestUnitHTTPClientRetries(t *testing.T) {
	c := createHTTPClient(2)
	httpmock.ActivateNonDefault(c.client.HTTPClient)
	defer httpmock.DeactivateAndReset()

	Convey("Server errors are retried up to the configured count", t, func() {
		calls := 0
		httpmock.RegisterResponder(http.MethodGet, testURL, func(req *http.Request) (*http.Response, error) {
			calls++
			return httpmock.NewStringResponse(http.StatusServiceUnavailable, "busy"), nil
		})

		resp, err := c.Get(context.Background(), testURL, RequestOptions{})
		So(err, ShouldBeNil)
		So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
		So(string(resp.Body), ShouldEqual, "busy")
		So(calls, ShouldEqual, 3)
	})
}

func TestUnitHTTPClientGetAndDelete(t *testing.T) {
	c := createHTTPClient(0)
	httpmock.ActivateNonDefault(c.client.HTTPClient)
	defer httpmock.DeactivateAndReset()

	cardURL := "https://api.sandbox.paypal.com/v1/vault/credit-card/CARD-1"

	Convey("Bearer auth is sent on GET and DELETE", t, func() {
		checkBearer := func(status int, body string) httpmock.Responder {
			return func(req *http.Request) (*http.Response, error) {
				So(req.Header.Get("Authorization"), ShouldEqual, "Bearer A015QQ")
				return httpmock.NewStringResponse(status, body), nil
			}
		}
		httpmock.RegisterResponder(http.MethodGet, cardURL, checkBearer(http.StatusOK, `{"state":"ok"}`))
		httpmock.RegisterResponder(http.MethodDelete, cardURL, checkBearer(http.StatusNoContent, ""))

		opts := RequestOptions{Auth: BearerAuth{Token: "A015QQ"}}

		resp, err := c.Get(context.Background(), cardURL, opts)
		So(err, ShouldBeNil)
		So(string(resp.Body), ShouldEqual, `{"state":"ok"}`)

		resp, err = c.Delete(context.Background(), cardURL, opts)
		So(err, ShouldBeNil)
		So(resp.StatusCode, ShouldEqual, http.StatusNoContent)
		So(resp.Body, ShouldBeEmpty)
	})

	Convey("Token type is used when given", t, func() {
		req, _ := http.NewRequest(http.MethodGet, cardURL, nil)
		BearerAuth{Type: "Basic", Token: "abc"}.Apply(req)
		So(req.Header.Get("Authorization"), ShouldEqual, "Basic abc")
	})
}
