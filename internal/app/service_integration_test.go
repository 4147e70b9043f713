package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/relay/internal/adapters/upstream"
	service "github.com/okian/relay/internal/app"
	"github.com/okian/relay/internal/domain/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given real provider clients against fake upstreams", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("appid") != "k" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"coord":{"lat":35.68,"lon":139.69},"weather":[{"description":"few clouds"}],"main":{"temp":25.1,"feels_like":26},"wind":{"speed":2.1},"sys":{"country":"JP"}}`))
		})
		mux.HandleFunc("/alpha/jp", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"name":{"official":"Japan"},"flags":{"png":"jp.png"},"population":125836021,"region":"Asia","currencies":{"JPY":{"name":"Japanese yen","symbol":"¥"}}}]`))
		})
		mux.HandleFunc("/alpha/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})
		mux.HandleFunc("/latest/USD", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"JPY":149.456}}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		ctx := context.Background()
		newService := func(key string) *service.Service {
			return service.New(
				upstream.NewOpenWeather(srv.URL, key),
				upstream.NewRestCountries(srv.URL),
				upstream.NewExchangeRate(srv.URL),
			)
		}

		Convey("When every provider answers", func() {
			svc := newService("k")

			w, werr := svc.Weather(ctx, "Tokyo")
			c, cerr := svc.Country(ctx, "jp")
			r := svc.ExchangeRate(ctx, "JPY")

			Convey("Then every summary is built", func() {
				So(werr, ShouldBeNil)
				So(w.CountryCode, ShouldEqual, "JP")
				So(w.Rain, ShouldEqual, 0)
				So(cerr, ShouldBeNil)
				So(c.CurrencyCode, ShouldEqual, "JPY")
				So(c.CurrencyName, ShouldEqual, "Japanese yen")
				So(r, ShouldResemble, model.ExchangeRate{Rate: "149.46"})
			})
		})

		Convey("When the API key is missing", func() {
			_, err := newService("").Weather(ctx, "Tokyo")
			So(err, ShouldNotBeNil)
		})

		Convey("When the country code is rejected upstream", func() {
			_, err := newService("k").Country(ctx, "!!")
			So(err, ShouldNotBeNil)
		})
	})
}
