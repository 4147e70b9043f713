package model

import (
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

var ratePattern = regexp.MustCompile(`^-?\d+\.\d{2}$`)

func TestNewExchangeRate(t *testing.T) {
	Convey("Given a USD rates table", t, func() {
		table := RatesTable{
			Result:   "success",
			BaseCode: "USD",
			Rates: map[string]float64{
				"USD": 1,
				"EUR": 0.9234,
				"JPY": 149.456,
				"BTC": 0.0000157,
				"ZZZ": 0,
			},
		}

		Convey("When the code is present", func() {
			rate, found := NewExchangeRate(table, "EUR")

			Convey("Then it is formatted to two decimals", func() {
				So(found, ShouldBeTrue)
				So(rate.Rate, ShouldEqual, "0.92")
			})
		})

		Convey("Then every present rate matches the two-decimal pattern", func() {
			for _, code := range []string{"USD", "EUR", "JPY", "BTC"} {
				rate, found := NewExchangeRate(table, code)
				So(found, ShouldBeTrue)
				So(ratePattern.MatchString(rate.Rate), ShouldBeTrue)
			}
			usd, _ := NewExchangeRate(table, "USD")
			So(usd.Rate, ShouldEqual, "1.00")
			jpy, _ := NewExchangeRate(table, "JPY")
			So(jpy.Rate, ShouldEqual, "149.46")
			btc, _ := NewExchangeRate(table, "BTC")
			So(btc.Rate, ShouldEqual, "0.00")
		})

		Convey("When the code is absent", func() {
			rate, found := NewExchangeRate(table, "XXX")

			Convey("Then the sentinel is returned", func() {
				So(found, ShouldBeFalse)
				So(rate, ShouldResemble, UnavailableRate())
				So(rate.Rate, ShouldEqual, "N/A")
			})
		})

		Convey("When the code differs only in case", func() {
			_, found := NewExchangeRate(table, "eur")
			So(found, ShouldBeFalse)
		})

		Convey("When the rate is zero", func() {
			rate, found := NewExchangeRate(table, "ZZZ")
			So(found, ShouldBeFalse)
			So(rate.Rate, ShouldEqual, NotAvailable)
		})

		Convey("When the table has no rates", func() {
			rate, found := NewExchangeRate(RatesTable{Result: "error"}, "EUR")
			So(found, ShouldBeFalse)
			So(rate.Rate, ShouldEqual, NotAvailable)
		})
	})
}
