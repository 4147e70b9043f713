package probe

import (
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCheckWeather(t *testing.T) {
	Convey("Given weather responses", t, func() {
		Convey("A complete summary passes", func() {
			body := `{"temperature":1.5,"description":"snow","coordinates":{"lat":1,"lon":2},"feels_like":-1,"wind_speed":3,"country_code":"NO","rain":0}`
			So(checkWeather(http.StatusOK, []byte(body)), ShouldBeEmpty)
		})

		Convey("Missing coordinates and negative rain are flagged", func() {
			body := `{"temperature":1.5,"description":"snow","feels_like":-1,"wind_speed":3,"rain":-1}`
			v := checkWeather(http.StatusOK, []byte(body))
			So(v, ShouldContain, "coordinates is not an object")
			So(v, ShouldContain, "rain is not a non-negative number")
		})

		Convey("A string temperature is flagged", func() {
			body := `{"temperature":"warm","description":"x","coordinates":{},"feels_like":1,"wind_speed":1,"rain":0}`
			So(checkWeather(http.StatusOK, []byte(body)), ShouldContain, "temperature is not a number")
		})

		Convey("The fixed failure body passes on 500", func() {
			So(checkWeather(http.StatusInternalServerError, []byte(weatherFailureBody+"\n")), ShouldBeEmpty)
		})

		Convey("Any other failure body is flagged", func() {
			So(checkWeather(http.StatusInternalServerError, []byte(`{"error":"boom"}`)), ShouldHaveLength, 1)
			So(checkWeather(http.StatusBadGateway, nil), ShouldHaveLength, 1)
		})
	})
}

func TestCheckCountry(t *testing.T) {
	Convey("Given country responses", t, func() {
		Convey("A summary with a currency passes", func() {
			body := `{"fullName":"Japan","flag":"jp.png","population":125836021,"region":"Asia","currencyCode":"JPY","currencyName":"Japanese yen"}`
			So(checkCountry(http.StatusOK, []byte(body)), ShouldBeEmpty)
		})

		Convey("N/A without currencyCode passes", func() {
			body := `{"fullName":"Antarctica","flag":"aq.png","population":1000,"region":"Antarctic","currencyName":"N/A"}`
			So(checkCountry(http.StatusOK, []byte(body)), ShouldBeEmpty)
		})

		Convey("N/A with a currencyCode is flagged", func() {
			body := `{"fullName":"Antarctica","flag":"aq.png","population":1000,"region":"Antarctic","currencyCode":null,"currencyName":"N/A"}`
			So(checkCountry(http.StatusOK, []byte(body)), ShouldContain, "currencyCode present although currencyName is N/A")
		})

		Convey("A fractional population is flagged", func() {
			body := `{"fullName":"X","flag":"x","population":1.5,"region":"X","currencyCode":"X","currencyName":"X"}`
			So(checkCountry(http.StatusOK, []byte(body)), ShouldContain, "population is not an integer")
		})

		Convey("The fixed failure body passes on 500", func() {
			So(checkCountry(http.StatusInternalServerError, []byte(countryFailureBody)), ShouldBeEmpty)
		})
	})
}

func TestCheckExchange(t *testing.T) {
	Convey("Given exchange responses", t, func() {
		So(checkExchange(http.StatusOK, []byte(`{"rate":"0.92"}`)), ShouldBeEmpty)
		So(checkExchange(http.StatusOK, []byte(`{"rate":"149.46"}`)), ShouldBeEmpty)
		So(checkExchange(http.StatusOK, []byte(`{"rate":"N/A"}`)), ShouldBeEmpty)
		So(checkExchange(http.StatusOK, []byte(`{"rate":"0.9234"}`)), ShouldHaveLength, 1)
		So(checkExchange(http.StatusOK, []byte(`{"rate":0.92}`)), ShouldHaveLength, 1)
		So(checkExchange(http.StatusOK, []byte(`not json`)), ShouldHaveLength, 1)
		So(checkExchange(http.StatusInternalServerError, []byte(`{"rate":"N/A"}`)), ShouldHaveLength, 1)
	})
}

func TestSplitList(t *testing.T) {
	Convey("Given comma separated flag values", t, func() {
		So(SplitList("London, Tokyo,,São Paulo "), ShouldResemble, []string{"London", "Tokyo", "São Paulo"})
		So(SplitList(""), ShouldBeEmpty)
	})
}

func TestBuildCases(t *testing.T) {
	Convey("Given inputs that need escaping", t, func() {
		cases := buildCases(&Config{Cities: []string{"São Paulo"}, Countries: []string{"a/b"}, Currencies: []string{"EUR"}})

		So(cases, ShouldHaveLength, 3)
		So(cases[0].Path, ShouldEqual, "/api/weather?city=S%C3%A3o+Paulo")
		So(cases[1].Path, ShouldEqual, "/api/country/a%2Fb")
		So(cases[2].Path, ShouldEqual, "/api/exchange/EUR")
	})
}
