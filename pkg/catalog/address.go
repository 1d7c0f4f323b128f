package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// Paths of the recipe server API.
const (
	HealthPath      = "/api"
	RecipesPath     = "/api/coffee_recipes"
	CoffeesPath     = "/api/coffees"
	ImagesPath      = "/api/images/coffee_list"
	ingredientsPart = "ingredients"
)

// CleanHost removes surrounding spaces and an http:// or https:// prefix.
func CleanHost(host string) string {
	res := strings.TrimSpace(host)
	res = strings.TrimPrefix(res, "http://")
	res = strings.TrimPrefix(res, "https://")
	return res
}

// BaseURL returns "http://host:port" for a raw host and port.
func BaseURL(host, port string) string {
	return fmt.Sprintf("http://%s:%s", CleanHost(host), strings.TrimSpace(port))
}

// HealthURL is the URL of the reachability probe.
func HealthURL(host, port string) string {
	return BaseURL(host, port) + HealthPath
}

// RecipesURL is the URL of the full recipe catalog.
func RecipesURL(host, port string) string {
	return BaseURL(host, port) + RecipesPath
}

// CoffeesURL is the URL of the coffee name list.
func CoffeesURL(host, port string) string {
	return BaseURL(host, port) + CoffeesPath
}

// IngredientsURL is the URL of ingredients of a coffee for one size.
func IngredientsURL(host, port, size, coffee string) string {
	return fmt.Sprintf("%s%s/%s/%s/%s",
		BaseURL(host, port), CoffeesPath,
		url.PathEscape(size), url.PathEscape(coffee), ingredientsPart,
	)
}

// ImageURL is the URL of the list image of a coffee.
func ImageURL(host, port, coffee string) string {
	return fmt.Sprintf("%s%s/%s",
		BaseURL(host, port), ImagesPath, url.PathEscape(ImageKey(coffee)))
}

// ParseServerURI extracts host and port from a scanned URI such as
// "http://192.168.1.5:5000/". The scheme is optional, the port is not.
func ParseServerURI(uri string) (host, port string, err error) {
	s := strings.TrimSpace(uri)
	if s == "" {
		return "", "", ServerURIError(uri, "URI is empty")
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", "", ServerURIError(uri, err.Error())
	}

	host = u.Hostname()
	port = u.Port()
	if host == "" {
		return "", "", ServerURIError(uri, "host is missing")
	}
	if port == "" {
		return "", "", ServerURIError(uri, "port is missing")
	}
	return host, port, nil
}

// ValidateAddress checks that a host and port can form a server URL.
func ValidateAddress(host, port string) error {
	h := CleanHost(host)
	if h == "" {
		return AddressError(host, port, "host is empty")
	}
	p := strings.TrimSpace(port)
	if p == "" {
		return AddressError(host, port, "port is empty")
	}
	u, err := url.Parse(BaseURL(h, p))
	if err != nil || u.Port() == "" {
		return AddressError(host, port, "cannot build a URL")
	}
	return nil
}
