package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/relay/internal/domain/model"

	. "github.com/smartystreets/goconvey/convey"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newUpstream(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenWeather(t *testing.T) {
	Convey("Given an OpenWeatherMap fake", t, func() {
		var gotPath, gotQuery string
		srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"main":{"temp":20.5,"feels_like":19},"weather":[{"description":"clear sky"}],"wind":{"speed":3},"sys":{"country":"FR"},"coord":{"lat":48.85,"lon":2.35}}`))
		})
		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		client := NewOpenWeather(srv.URL+"/data/2.5/", "secret-key", WithTracerProvider(tp))

		Convey("When fetching a city", func() {
			p, err := client.CurrentByCity(context.Background(), "São Paulo")

			Convey("Then the query carries city, key and metric units", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/data/2.5/weather")
				So(gotQuery, ShouldContainSubstring, "q=S%C3%A3o+Paulo")
				So(gotQuery, ShouldContainSubstring, "appid=secret-key")
				So(gotQuery, ShouldContainSubstring, "units=metric")
				So(p.Main.Temp, ShouldEqual, 20.5)
				So(p.Weather[0].Description, ShouldEqual, "clear sky")
			})

			Convey("And one client span is recorded without the key", func() {
				spans := recorder.Ended()
				So(len(spans), ShouldEqual, 1)
				So(spans[0].Name(), ShouldEqual, ProviderOpenWeather+" GET")
				for _, attr := range spans[0].Attributes() {
					So(attr.Value.Emit(), ShouldNotContainSubstring, "secret-key")
				}
			})
		})
	})

	Convey("Given an OpenWeatherMap that rejects the key", t, func() {
		srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
		})
		client := NewOpenWeather(srv.URL, "")

		Convey("When fetching a city", func() {
			_, err := client.CurrentByCity(context.Background(), "London")

			Convey("Then a StatusError is returned", func() {
				So(errors.Is(err, ErrUpstreamStatus), ShouldBeTrue)
				var se *StatusError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.Status, ShouldEqual, http.StatusUnauthorized)
				So(se.Provider, ShouldEqual, ProviderOpenWeather)
				So(se.Error(), ShouldContainSubstring, "Invalid API key")
			})
		})
	})
}

func TestTransportFailures(t *testing.T) {
	Convey("Given an upstream that is not reachable", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()
		client := NewOpenWeather(addr, "secret-key")

		Convey("When fetching", func() {
			_, err := client.CurrentByCity(context.Background(), "London")

			Convey("Then a transport error without the query is returned", func() {
				So(errors.Is(err, ErrTransport), ShouldBeTrue)
				So(err.Error(), ShouldNotContainSubstring, "secret-key")
			})
		})
	})

	Convey("Given an upstream slower than the timeout", t, func() {
		release := make(chan struct{})
		srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		defer close(release)
		client := NewExchangeRate(srv.URL, WithTimeout(20*time.Millisecond))

		Convey("When fetching", func() {
			start := time.Now()
			_, err := client.LatestUSD(context.Background())

			Convey("Then the call is bounded", func() {
				So(errors.Is(err, ErrTransport), ShouldBeTrue)
				So(time.Since(start), ShouldBeLessThan, 2*time.Second)
			})
		})
	})

	Convey("Given an upstream returning invalid JSON", t, func() {
		srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rates":`))
		})
		client := NewExchangeRate(srv.URL)

		Convey("When fetching", func() {
			_, err := client.LatestUSD(context.Background())
			So(errors.Is(err, ErrDecode), ShouldBeTrue)
		})
	})
}

func TestRestCountries(t *testing.T) {
	Convey("Given a REST Countries fake", t, func() {
		var gotPath, gotEscaped string
		srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotEscaped = r.URL.EscapedPath()
			if strings.HasSuffix(r.URL.Path, "/zz") {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"status":404,"message":"Not Found"}`))
				return
			}
			_, _ = w.Write([]byte(`[{"name":{"official":"Federal Republic of Germany"},"flags":{"png":"de.png"},"population":83240525,"region":"Europe","currencies":{"EUR":{"name":"Euro","symbol":"€"}}}]`))
		})
		client := NewRestCountries(srv.URL + "/v3.1")

		Convey("When looking up a known code", func() {
			records, err := client.ByAlphaCode(context.Background(), "de")

			Convey("Then the alpha endpoint is used and records decoded", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/v3.1/alpha/de")
				So(len(records), ShouldEqual, 1)
				So(records[0].Name.Official, ShouldEqual, "Federal Republic of Germany")
				cur, ok := records[0].Currencies.First()
				So(ok, ShouldBeTrue)
				So(cur.Code, ShouldEqual, "EUR")
			})
		})

		Convey("When looking up an unknown code", func() {
			_, err := client.ByAlphaCode(context.Background(), "zz")
			So(errors.Is(err, ErrUpstreamStatus), ShouldBeTrue)
		})

		Convey("When the code contains path characters", func() {
			_, _ = client.ByAlphaCode(context.Background(), "a/b")
			So(gotEscaped, ShouldEqual, "/v3.1/alpha/a%2Fb")
		})
	})
}

func TestExchangeRate(t *testing.T) {
	Convey("Given an ExchangeRate-API fake", t, func() {
		var gotPath string
		body := `{"result":"success","base_code":"USD","rates":{"USD":1,"EUR":0.9234}}`
		srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(body))
		})
		client := NewExchangeRate(srv.URL + "/v6")

		Convey("When fetching the latest table", func() {
			table, err := client.LatestUSD(context.Background())

			Convey("Then the USD table is returned", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/v6/latest/USD")
				So(table.BaseCode, ShouldEqual, "USD")
				rate, found := model.NewExchangeRate(table, "EUR")
				So(found, ShouldBeTrue)
				So(rate.Rate, ShouldEqual, "0.92")
			})
		})

		Convey("When the provider reports an error result", func() {
			body = `{"result":"error","error-type":"unsupported-code"}`
			_, err := client.LatestUSD(context.Background())

			Convey("Then ErrUpstreamResult is returned", func() {
				So(errors.Is(err, ErrUpstreamResult), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "unsupported-code")
			})
		})
	})
}
