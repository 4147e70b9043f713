package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"regexp"
)

var rateFormat = regexp.MustCompile(`^-?\d+\.\d{2}$`)

// check validates one response and returns the properties it breaks.
type check func(status int, body []byte) []string

func checkFor(endpoint string) check {
	switch endpoint {
	case EndpointWeather:
		return checkWeather
	case EndpointCountry:
		return checkCountry
	default:
		return checkExchange
	}
}

// checkWeather accepts a full summary on 200 or the fixed body on 500.
func checkWeather(status int, body []byte) []string {
	switch status {
	case http.StatusOK:
	case http.StatusInternalServerError:
		return exactBody(body, weatherFailureBody)
	default:
		return []string{fmt.Sprintf("unexpected status %d", status)}
	}

	doc, v := decodeObject(body)
	if v != nil {
		return v
	}
	var out []string
	for _, key := range []string{"temperature", "feels_like", "wind_speed"} {
		if _, ok := doc[key].(float64); !ok {
			out = append(out, key+" is not a number")
		}
	}
	if _, ok := doc["description"].(string); !ok {
		out = append(out, "description is not a string")
	}
	if _, ok := doc["coordinates"].(map[string]any); !ok {
		out = append(out, "coordinates is not an object")
	}
	if rain, ok := doc["rain"].(float64); !ok || rain < 0 {
		out = append(out, "rain is not a non-negative number")
	}
	return out
}

// checkCountry accepts a summary on 200 or the fixed body on 500. When
// currencyName is N/A the currencyCode key must be absent.
func checkCountry(status int, body []byte) []string {
	switch status {
	case http.StatusOK:
	case http.StatusInternalServerError:
		return exactBody(body, countryFailureBody)
	default:
		return []string{fmt.Sprintf("unexpected status %d", status)}
	}

	doc, v := decodeObject(body)
	if v != nil {
		return v
	}
	var out []string
	for _, key := range []string{"fullName", "flag", "region", "currencyName"} {
		if _, ok := doc[key].(string); !ok {
			out = append(out, key+" is not a string")
		}
	}
	if p, ok := doc["population"].(float64); !ok || p != math.Trunc(p) {
		out = append(out, "population is not an integer")
	}
	code, hasCode := doc["currencyCode"]
	if doc["currencyName"] == notAvailable {
		if hasCode {
			out = append(out, "currencyCode present although currencyName is N/A")
		}
	} else if _, ok := code.(string); !ok {
		out = append(out, "currencyCode is not a string")
	}
	return out
}

// checkExchange requires 200 with a two decimal rate or N/A.
func checkExchange(status int, body []byte) []string {
	if status != http.StatusOK {
		return []string{fmt.Sprintf("unexpected status %d", status)}
	}
	doc, v := decodeObject(body)
	if v != nil {
		return v
	}
	rate, ok := doc["rate"].(string)
	if !ok {
		return []string{"rate is not a string"}
	}
	if rate != notAvailable && !rateFormat.MatchString(rate) {
		return []string{fmt.Sprintf("rate %q is neither N/A nor two decimals", rate)}
	}
	return nil
}

func decodeObject(body []byte) (map[string]any, []string) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, []string{"body is not a JSON object: " + err.Error()}
	}
	return doc, nil
}

func exactBody(body []byte, want string) []string {
	if got := string(bytes.TrimSpace(body)); got != want {
		return []string{fmt.Sprintf("failure body %q, want %q", got, want)}
	}
	return nil
}
