package iotesting

import (
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/findcoffee/findcoffee/pkg/catalog"
)

// EspressoJSON is a catalog with one coffee, one size, one ingredient and
// no steps.
const EspressoJSON = `[{"name":"Espresso","category":"Classic",` +
	`"final_volume":{"standard":"30ml"},` +
	`"ingredients":{"standard":{"Coffee":"7g"}},"steps":{}}]`

// CatalogJSON is a catalog of three coffees.
const CatalogJSON = `[
  {
    "name": "Espresso",
    "category": "Classic",
    "notes": "Short and strong",
    "final_volume": {"standard": "30ml", "double": "60ml"},
    "ingredients": {
      "standard": {"Coffee": "7g", "Water": "30ml"},
      "double": {"Coffee": "14g", "Water": "60ml"}
    },
    "steps": {
      "1": {"title": "Grind", "description": "Grind the beans finely"},
      "2": {"title": "Tamp", "description": "Tamp the grounds evenly"},
      "3": {"title": "Extract", "description": "Extract for 25 seconds"}
    }
  },
  {
    "name": "Caffe Latte",
    "category": "Milk based",
    "final_volume": {"tall": "350ml"},
    "ingredients": {"tall": {"Coffee": "14g", "Milk": "300ml"}},
    "steps": {
      "1": {"title": "Brew", "description": "Brew a double espresso"},
      "2": {"title": "Steam", "description": "Steam the milk"}
    }
  },
  {
    "name": "Cappuccino",
    "category": "Milk based",
    "final_volume": {"standard": "180ml"},
    "ingredients": {"standard": {"Coffee": "7g", "Milk": "100ml", "Foam": "50ml"}},
    "steps": {"1": {"title": "Brew"}, "2": {"title": "Foam"}}
  }
]`

// CatalogServer is a fake recipe server. Its responses can be changed
// while it runs.
type CatalogServer struct {
	*httptest.Server

	mu          sync.Mutex
	healthCode  int
	catalogCode int
	catalog     string
	coffees     string
	ingredients string
	hits        map[string]int
}

// NewCatalogServer starts a recipe server that answers the health probe
// with 200 and serves body as the recipe catalog. It is closed when the
// test finishes.
func NewCatalogServer(t *testing.T, body string) *CatalogServer {
	t.Helper()

	res := &CatalogServer{
		healthCode:  http.StatusOK,
		catalogCode: http.StatusOK,
		catalog:     body,
		coffees:     `["Espresso","Caffe Latte","Cappuccino"]`,
		ingredients: `{"Coffee":"7g","Water":"30ml"}`,
		hits:        make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+catalog.HealthPath, func(w http.ResponseWriter, r *http.Request) {
		res.mu.Lock()
		code := res.healthCode
		res.hits[catalog.HealthPath]++
		res.mu.Unlock()
		w.WriteHeader(code)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET "+catalog.RecipesPath, func(w http.ResponseWriter, r *http.Request) {
		res.mu.Lock()
		code, body := res.catalogCode, res.catalog
		res.hits[catalog.RecipesPath]++
		res.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("GET "+catalog.CoffeesPath, func(w http.ResponseWriter, r *http.Request) {
		res.mu.Lock()
		body := res.coffees
		res.hits[catalog.CoffeesPath]++
		res.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("GET "+catalog.CoffeesPath+"/{size}/{coffee}/ingredients",
		func(w http.ResponseWriter, r *http.Request) {
			res.mu.Lock()
			body := res.ingredients
			res.hits["ingredients"]++
			res.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})

	res.Server = httptest.NewServer(mux)
	t.Cleanup(res.Close)
	return res
}

// HostPort returns host and port of the server as a user would type them.
func (s *CatalogServer) HostPort() (string, string) {
	host, port, _ := net.SplitHostPort(s.Listener.Addr().String())
	return host, port
}

// SetHealthStatus changes the status code of the health probe.
func (s *CatalogServer) SetHealthStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthCode = code
}

// SetCatalog changes the status code and body of the catalog endpoint.
func (s *CatalogServer) SetCatalog(code int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogCode = code
	s.catalog = body
}

// SetNames changes the body of the coffee name list.
func (s *CatalogServer) SetNames(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coffees = body
}

// Hits returns how many times a path was requested. Ingredient requests
// are counted under "ingredients".
func (s *CatalogServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}
