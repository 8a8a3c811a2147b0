package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/sync/errgroup"

	"github.com/companieshouse/paypal.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal.api.ch.gov.uk/fixtures"
	"github.com/companieshouse/paypal.api.ch.gov.uk/helpers"
	"github.com/companieshouse/paypal.api.ch.gov.uk/models"
	"github.com/companieshouse/paypal.api.ch.gov.uk/transport"
)

const clientIP = "81.2.69.160"

// countingTransport replies to every POST with the same body and counts calls
type countingTransport struct {
	calls int32
	body  string
}

func (c *countingTransport) Get(_ context.Context, _ string, _ transport.RequestOptions) (*transport.Response, error) {
	atomic.AddInt32(&c.calls, 1)
	return &transport.Response{StatusCode: http.StatusOK, Body: []byte(c.body)}, nil
}

func (c *countingTransport) Post(_ context.Context, _ string, _ []byte, _ transport.RequestOptions) (*transport.Response, error) {
	atomic.AddInt32(&c.calls, 1)
	return &transport.Response{StatusCode: http.StatusOK, Body: []byte(c.body)}, nil
}

func (c *countingTransport) Delete(_ context.Context, _ string, _ transport.RequestOptions) (*transport.Response, error) {
	atomic.AddInt32(&c.calls, 1)
	return &transport.Response{StatusCode: http.StatusNoContent}, nil
}

func createMockPayPalService(t *testing.T, client transport.Client, opts ...Option) *PayPalService {
	svc, err := NewPayPalService(fixtures.GetConfig(), client, helpers.StaticClientIP(clientIP), opts...)
	if err != nil {
		t.Fatalf("error creating paypal service: %v", err)
	}
	return svc
}

// classicReply expects a single Classic request for method and replies with body
func classicReply(mockTransport *transport.MockClient, method, body string) *gomock.Call {
	return mockTransport.EXPECT().Post(gomock.Any(), "https://api-3t.sandbox.paypal.com/nvp", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, payload []byte, opts transport.RequestOptions) (*transport.Response, error) {
			values, err := url.ParseQuery(string(payload))
			So(err, ShouldBeNil)
			So(values.Get("METHOD"), ShouldEqual, method)
			So(values.Get("USER"), ShouldEqual, "api-user")
			So(opts.ContentType, ShouldEqual, "application/x-www-form-urlencoded")
			So(opts.Auth, ShouldBeNil)
			return &transport.Response{StatusCode: http.StatusOK, Body: []byte(body)}, nil
		})
}

func TestUnitNewPayPalService(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	mockTransport := transport.NewMockClient(mockCtrl)

	Convey("Missing configuration", t, func() {
		svc, err := NewPayPalService(nil, mockTransport, nil)
		So(svc, ShouldBeNil)
		So(errors.Is(err, models.ErrConfiguration), ShouldBeTrue)
	})

	Convey("Missing credentials are named", t, func() {
		cfg := fixtures.GetConfig()
		cfg.NVPSignature = ""
		cfg.OAuthSecret = ""
		_, err := NewPayPalService(cfg, mockTransport, nil)

		var configErr *models.ConfigurationError
		So(errors.As(err, &configErr), ShouldBeTrue)
		So(configErr.Fields, ShouldContain, "NVPSignature")
		So(configErr.Fields, ShouldContain, "OAuthSecret")
	})

	Convey("Missing endpoint", t, func() {
		cfg := fixtures.GetConfig()
		cfg.LiveRestEndpoint = ""
		_, err := NewPayPalService(cfg, mockTransport, nil)
		So(errors.Is(err, models.ErrConfiguration), ShouldBeTrue)
	})

	Convey("Missing transport", t, func() {
		_, err := NewPayPalService(fixtures.GetConfig(), nil, nil)

		var configErr *models.ConfigurationError
		So(errors.As(err, &configErr), ShouldBeTrue)
		So(configErr.Fields, ShouldResemble, []string{"transport"})
	})

	Convey("Defaults", t, func() {
		svc, err := NewPayPalService(fixtures.GetConfig(), mockTransport, nil)
		So(err, ShouldBeNil)
		So(svc.IPResolver, ShouldHaveSameTypeAs, helpers.ContextClientIP{})
		So(svc.TokenProvider, ShouldHaveSameTypeAs, &ClientCredentialsTokenProvider{})
		So(svc.overrides["10486"], ShouldEqual, models.DefaultMessageOverrides["10486"])
	})

	Convey("Configuration is copied", t, func() {
		cfg := fixtures.GetConfig()
		svc, _ := NewPayPalService(cfg, mockTransport, nil)
		cfg.SandboxLoginURI = "https://changed.example.com"
		So(svc.ExpressCheckoutURL("EC-1"), ShouldEqual, "https://www.sandbox.paypal.com/cgi-bin/webscr?cmd=_express-checkout&token=EC-1")
	})

	Convey("Options", t, func() {
		cfg := fixtures.GetConfig()
		cfg.OAuthTokenCache = true
		svc, err := NewPayPalService(cfg, mockTransport, nil, WithMessageOverrides(map[string]string{"10486": "Go back to PayPal", "99999": "Custom"}))
		So(err, ShouldBeNil)
		So(svc.TokenProvider, ShouldHaveSameTypeAs, &CachedTokenProvider{})
		So(svc.overrides["10486"], ShouldEqual, "Go back to PayPal")
		So(svc.overrides["99999"], ShouldEqual, "Custom")
		So(models.DefaultMessageOverrides["10486"], ShouldNotEqual, "Go back to PayPal")

		stub := &stubTokenProvider{}
		svc, _ = NewPayPalService(cfg, mockTransport, nil, WithTokenProvider(stub))
		So(svc.TokenProvider, ShouldEqual, stub)
	})
}

func TestUnitSetExpressCheckout(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	mockTransport := transport.NewMockClient(mockCtrl)
	svc := createMockPayPalService(t, mockTransport)

	Convey("Invalid order is rejected before calling PayPal", t, func() {
		order := fixtures.GetOrder(1)
		order.CancelURL = ""
		redirectURL, err := svc.SetExpressCheckout(context.Background(), order)
		So(redirectURL, ShouldBeEmpty)
		So(errors.Is(err, models.ErrValidation), ShouldBeTrue)
	})

	Convey("Success returns the login URL for the token", t, func() {
		classicReply(mockTransport, "SetExpressCheckout", fixtures.ClassicCheckoutSuccess)

		redirectURL, err := svc.SetExpressCheckout(context.Background(), fixtures.GetOrder(2))
		So(err, ShouldBeNil)
		So(redirectURL, ShouldEqual, "https://www.sandbox.paypal.com/cgi-bin/webscr?cmd=_express-checkout&token=EC-123")
	})

	Convey("Success without a token is not recognised", t, func() {
		classicReply(mockTransport, "SetExpressCheckout", "ACK=Success")

		_, err := svc.SetExpressCheckout(context.Background(), fixtures.GetOrder(0))
		So(errors.Is(err, models.ErrTransport), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "There was an error while connecting to Paypal")
	})

	Convey("Business failures carry PayPal's message", t, func() {
		classicReply(mockTransport, "SetExpressCheckout", fixtures.ClassicSecurityFailure)

		_, err := svc.SetExpressCheckout(context.Background(), fixtures.GetOrder(0))
		var businessErr *models.BusinessError
		So(errors.As(err, &businessErr), ShouldBeTrue)
		So(businessErr.Code, ShouldEqual, "10002")
		So(businessErr.Message, ShouldEqual, "Security header is not valid")
	})

	Convey("Redirect codes are plain business failures when starting a checkout", t, func() {
		classicReply(mockTransport, "SetExpressCheckout", fixtures.ClassicRedirectFailure)

		_, err := svc.SetExpressCheckout(context.Background(), fixtures.GetOrder(0))
		So(errors.Is(err, models.ErrBusiness), ShouldBeTrue)
		So(errors.Is(err, models.ErrRedirect), ShouldBeFalse)
		So(err.Error(), ShouldEqual, models.DefaultMessageOverrides["10486"])
	})

	Convey("Connectivity errors are reported generically", t, func() {
		cause := errors.New("dial tcp 10.0.0.1:443: i/o timeout")
		mockTransport.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, cause)

		_, err := svc.SetExpressCheckout(context.Background(), fixtures.GetOrder(0))
		So(errors.Is(err, models.ErrTransport), ShouldBeTrue)
		So(errors.Is(err, cause), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "There was a problem initiating the transaction, please try again.")
	})

	Convey("Unrecognised replies are reported generically", t, func() {
		classicReply(mockTransport, "SetExpressCheckout", fixtures.ClassicUnrecognised)

		_, err := svc.SetExpressCheckout(context.Background(), fixtures.GetOrder(0))
		So(errors.Is(err, models.ErrTransport), ShouldBeTrue)
		So(err.Error(), ShouldEqual, "There was an error while connecting to Paypal")
	})
}

func TestUnitGetExpressCheckoutDetails(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	mockTransport := transport.NewMockClient(mockCtrl)
	svc := createMockPayPalService(t, mockTransport)

	Convey("Token is required", t, func() {
		_, err := svc.GetExpressCheckoutDetails(context.Background(), "")
		So(errors.Is(err, models.ErrValidation), ShouldBeTrue)
	})

	Convey("Details are returned in PayPal's order", t, func() {
		classicReply(mockTransport, "GetExpressCheckoutDetails", fixtures.ClassicCheckoutSuccess)

		details, err := svc.GetExpressCheckoutDetails(context.Background(), "EC-123")
		So(err, ShouldBeNil)
		So(details.Value("TOKEN"), ShouldEqual, "EC-123")
		So(details.Keys(), ShouldResemble, []string{"TOKEN", "TIMESTAMP", "CORRELATIONID", "ACK", "VERSION", "BUILD"})
	})

	Convey("Connectivity errors", t, func() {
		mockTransport.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("reset"))

		_, err := svc.GetExpressCheckoutDetails(context.Background(), "EC-123")
		So(err.Error(), ShouldEqual, "There was a problem getting your details, please try again.")
	})
}

func TestUnitDoExpressCheckoutPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	mockTransport := transport.NewMockClient(mockCtrl)
	svc := createMockPayPalService(t, mockTransport)

	Convey("Payer ID is required", t, func() {
		_, err := svc.DoExpressCheckoutPayment(context.Background(), fixtures.GetOrder(1), "EC-123", "")
		So(errors.Is(err, models.ErrValidation), ShouldBeTrue)
	})

	Convey("Success", t, func() {
		classicReply(mockTransport, "DoExpressCheckoutPayment", "TOKEN=EC-123&ACK=Success&PAYMENTINFO_0_TRANSACTIONID=8JS21354KK1234567")

		fields, err := svc.DoExpressCheckoutPayment(context.Background(), fixtures.GetOrder(1), "EC-123", "PAYER1")
		So(err, ShouldBeNil)
		So(fields.Value("PAYMENTINFO_0_TRANSACTIONID"), ShouldEqual, "8JS21354KK1234567")
	})

	Convey("Buyer must return to PayPal", t, func() {
		classicReply(mockTransport, "DoExpressCheckoutPayment", fixtures.ClassicRedirectFailure)

		_, err := svc.DoExpressCheckoutPayment(context.Background(), fixtures.GetOrder(1), "EC-123", "PAYER1")
		var redirectErr *models.RedirectError
		So(errors.As(err, &redirectErr), ShouldBeTrue)
		So(redirectErr.Token, ShouldEqual, "EC-123")
		So(redirectErr.Code, ShouldEqual, "10486")
		So(redirectErr.RedirectURL, ShouldEqual, "https://www.sandbox.paypal.com/cgi-bin/webscr?cmd=_express-checkout&token=EC-123")
		So(errors.Is(err, models.ErrBusiness), ShouldBeTrue)
	})

	Convey("Redirect code without a token", t, func() {
		classicReply(mockTransport, "DoExpressCheckoutPayment", fixtures.ClassicFailureNoToken)

		_, err := svc.DoExpressCheckoutPayment(context.Background(), fixtures.GetOrder(1), "EC-123", "PAYER1")
		So(errors.Is(err, models.ErrBusiness), ShouldBeTrue)
		So(errors.Is(err, models.ErrRedirect), ShouldBeFalse)
	})

	Convey("Unrecognised replies", t, func() {
		classicReply(mockTransport, "DoExpressCheckoutPayment", "ACK=Failure")

		_, err := svc.DoExpressCheckoutPayment(context.Background(), fixtures.GetOrder(1), "EC-123", "PAYER1")
		So(err.Error(), ShouldEqual, "There was an error completing the payment")
	})
}

func TestUnitDoDirectPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	mockTransport := transport.NewMockClient(mockCtrl)
	svc := createMockPayPalService(t, mockTransport)

	Convey("Missing CVV never reaches the transport", t, func() {
		counting := &countingTransport{body: fixtures.ClassicPaymentSuccess}
		countingSvc := createMockPayPalService(t, counting)

		payment := fixtures.GetDirectPayment()
		payment.CVV = ""
		_, err := countingSvc.DoDirectPayment(context.Background(), payment)

		var validationErr *models.ValidationError
		So(errors.As(err, &validationErr), ShouldBeTrue)
		So(validationErr.Field, ShouldEqual, "cvv")
		So(atomic.LoadInt32(&counting.calls), ShouldEqual, 0)
	})

	Convey("Client IP comes from the resolver", t, func() {
		noIP, _ := NewPayPalService(fixtures.GetConfig(), mockTransport, nil)
		_, err := noIP.DoDirectPayment(context.Background(), fixtures.GetDirectPayment())

		var validationErr *models.ValidationError
		So(errors.As(err, &validationErr), ShouldBeTrue)
		So(validationErr.Field, ShouldEqual, "ipAddress")

		mockTransport.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, payload []byte, _ transport.RequestOptions) (*transport.Response, error) {
				values, _ := url.ParseQuery(string(payload))
				So(values.Get("IPADDRESS"), ShouldEqual, "10.1.1.1")
				return &transport.Response{StatusCode: http.StatusOK, Body: []byte(fixtures.ClassicPaymentSuccess)}, nil
			})
		_, err = noIP.DoDirectPayment(helpers.WithClientIP(context.Background(), "10.1.1.1"), fixtures.GetDirectPayment())
		So(err, ShouldBeNil)
	})

	Convey("Success", t, func() {
		mockTransport.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, payload []byte, _ transport.RequestOptions) (*transport.Response, error) {
				values, _ := url.ParseQuery(string(payload))
				So(values.Get("METHOD"), ShouldEqual, "DoDirectPayment")
				So(values.Get("IPADDRESS"), ShouldEqual, clientIP)
				So(values.Get("ACCT"), ShouldEqual, "4008068706418697")
				So(values.Get("CVV2"), ShouldEqual, "123")
				So(values.Get("EXPDATE"), ShouldEqual, "52015")
				return &transport.Response{StatusCode: http.StatusOK, Body: []byte(fixtures.ClassicPaymentSuccess)}, nil
			})

		fields, err := svc.DoDirectPayment(context.Background(), fixtures.GetDirectPayment())
		So(err, ShouldBeNil)
		So(fields.Value("TRANSACTIONID"), ShouldEqual, "8JS21354KK1234567")
	})

	Convey("Declined cards", t, func() {
		classicReply(mockTransport, "DoDirectPayment", "ACK=Failure&L_ERRORCODE0=15005&L_LONGMESSAGE0=Processor%20Decline")

		_, err := svc.DoDirectPayment(context.Background(), fixtures.GetDirectPayment())
		So(err.Error(), ShouldEqual, "Your card was declined by the issuing bank.")
	})

	Convey("Connectivity errors", t, func() {
		mockTransport.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("reset"))

		_, err := svc.DoDirectPayment(context.Background(), fixtures.GetDirectPayment())
		So(err.Error(), ShouldEqual, "There was a problem processing your card, please try again.")
	})
}

func TestUnitRefundTransaction(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	mockTransport := transport.NewMockClient(mockCtrl)
	svc := createMockPayPalService(t, mockTransport, WithMessageOverrides(map[string]string{"10002": "Refunds are unavailable"}))

	Convey("Invalid refund", t, func() {
		_, err := svc.RefundTransaction(context.Background(), fixtures.GetRefund("Sideways"))
		So(errors.Is(err, models.ErrValidation), ShouldBeTrue)
	})

	Convey("Full refund", t, func() {
		mockTransport.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, payload []byte, _ transport.RequestOptions) (*transport.Response, error) {
				values, _ := url.ParseQuery(string(payload))
				So(values.Get("METHOD"), ShouldEqual, "RefundTransaction")
				So(values.Get("TRANSACTIONID"), ShouldEqual, "8JS21354KK1234567")
				So(values.Has("AMT"), ShouldBeFalse)
				return &transport.Response{StatusCode: http.StatusOK, Body: []byte("ACK=Success&REFUNDTRANSACTIONID=9AB12345CD6789012")}, nil
			})

		fields, err := svc.RefundTransaction(context.Background(), fixtures.GetRefund(models.RefundFull))
		So(err, ShouldBeNil)
		So(fields.Value("REFUNDTRANSACTIONID"), ShouldEqual, "9AB12345CD6789012")
	})

	Convey("Configured overrides replace PayPal's message", t, func() {
		classicReply(mockTransport, "RefundTransaction", fixtures.ClassicSecurityFailure)

		_, err := svc.RefundTransaction(context.Background(), fixtures.GetRefund(models.RefundPartial))
		So(err.Error(), ShouldEqual, "Refunds are unavailable")
	})

	Convey("Connectivity errors", t, func() {
		mockTransport.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("reset"))

		_, err := svc.RefundTransaction(context.Background(), fixtures.GetRefund(models.RefundFull))
		So(err.Error(), ShouldEqual, "A problem occurred during the refund process, please try again.")
	})
}

func TestUnitGetVerifiedStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	mockTransport := transport.NewMockClient(mockCtrl)
	svc := createMockPayPalService(t, mockTransport)
	verifiedStatusURL := fixtures.GetConfig().AdaptiveAccountsURL("GetVerifiedStatus")

	Convey("Invalid email", t, func() {
		_, err := svc.GetVerifiedStatus(context.Background(), "not-an-email")
		So(errors.Is(err, models.ErrValidation), ShouldBeTrue)
	})

	Convey("Verified account", t, func() {
		mockTransport.EXPECT().Post(gomock.Any(), verifiedStatusURL, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, payload []byte, opts transport.RequestOptions) (*transport.Response, error) {
				values, _ := url.ParseQuery(string(payload))
				So(values.Get("accountIdentifier.emailAddress"), ShouldEqual, "buyer@example.com")
				So(values.Has("USER"), ShouldBeFalse)
				So(opts.Headers["X-PAYPAL-APPLICATION-ID"], ShouldEqual, "APP-80W284485P519543T")
				So(opts.Headers["X-PAYPAL-RESPONSE-DATA-FORMAT"], ShouldEqual, "JSON")
				return &transport.Response{StatusCode: http.StatusOK, Body: []byte(fixtures.AdaptiveVerifiedSuccess)}, nil
			})

		status, err := svc.GetVerifiedStatus(context.Background(), "buyer@example.com")
		So(err, ShouldBeNil)
		So(status["accountStatus"], ShouldEqual, "VERIFIED")
	})

	Convey("Unknown account", t, func() {
		mockTransport.EXPECT().Post(gomock.Any(), verifiedStatusURL, gomock.Any(), gomock.Any()).
			Return(&transport.Response{StatusCode: http.StatusOK, Body: []byte(fixtures.AdaptiveVerifiedFailure)}, nil)

		_, err := svc.GetVerifiedStatus(context.Background(), "buyer@example.com")
		var businessErr *models.BusinessError
		So(errors.As(err, &businessErr), ShouldBeTrue)
		So(businessErr.Code, ShouldEqual, "580023")
	})

	Convey("Unrecognised replies", t, func() {
		mockTransport.EXPECT().Post(gomock.Any(), verifiedStatusURL, gomock.Any(), gomock.Any()).
			Return(&transport.Response{StatusCode: http.StatusBadGateway, Body: []byte("<html></html>")}, nil)

		_, err := svc.GetVerifiedStatus(context.Background(), "buyer@example.com")
		So(err.Error(), ShouldEqual, "An error occurred while getting the status of your account.")
	})
}

func TestUnitConcurrentUse(t *testing.T) {
	Convey("A shared service can be used from many goroutines", t, func() {
		counting := &countingTransport{body: fixtures.ClassicPaymentSuccess}
		svc := createMockPayPalService(t, counting)

		var g errgroup.Group
		for i := 0; i < 20; i++ {
			g.Go(func() error {
				_, err := svc.DoDirectPayment(context.Background(), fixtures.GetDirectPayment())
				return err
			})
		}
		So(g.Wait(), ShouldBeNil)
		So(atomic.LoadInt32(&counting.calls), ShouldEqual, 20)
	})
}

func TestUnitExpressCheckoutURL(t *testing.T) {
	Convey("Live and sandbox login URLs", t, func() {
		cfg := fixtures.GetConfig()
		cfg.SandboxMode = false
		svc, err := NewPayPalService(cfg, &countingTransport{}, nil)
		So(err, ShouldBeNil)
		So(svc.ExpressCheckoutURL("EC-9"), ShouldEqual, "https://www.paypal.com/cgi-bin/webscr?cmd=_express-checkout&token=EC-9")
		So(svc.Config.Endpoint(config.Classic), ShouldEqual, "https://api-3t.paypal.com/nvp")
	})
}
