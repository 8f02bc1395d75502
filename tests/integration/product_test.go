//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestListProducts(t *testing.T) {
	resp := doGet(t, "/api/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)
	if len(products) != seededProducts {
		t.Fatalf("expected %d products, got %d", seededProducts, len(products))
	}
}

func TestListProducts_Fields(t *testing.T) {
	resp := doGet(t, "/api/products")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	products := decodeJSON[[]productResponse](t, resp)

	var amber *productResponse
	for i := range products {
		if products[i].ID == 100 {
			amber = &products[i]
			break
		}
	}

	if amber == nil {
		t.Fatal("product with ID 100 not found")
	}
	if amber.Name != "Amber Nuit" {
		t.Errorf("name: got %q, want %q", amber.Name, "Amber Nuit")
	}
	if amber.Brand != "Vella" {
		t.Errorf("brand: got %q, want %q", amber.Brand, "Vella")
	}
	if amber.Price != "24.90" {
		t.Errorf("price: got %q, want %q", amber.Price, "24.90")
	}
	if amber.Category != "woman" {
		t.Errorf("category: got %q, want %q", amber.Category, "woman")
	}
}

func TestGetProduct(t *testing.T) {
	resp := doGet(t, "/api/products/100")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	product := decodeJSON[productResponse](t, resp)
	if product.ID != 100 {
		t.Errorf("id: got %d, want 100", product.ID)
	}
	if product.Name != "Amber Nuit" {
		t.Errorf("name: got %q, want %q", product.Name, "Amber Nuit")
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	resp := doGet(t, "/api/products/99999")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	errResp := decodeJSON[errorResponse](t, resp)
	if errResp.Code != 404 {
		t.Errorf("error code: got %d, want 404", errResp.Code)
	}
}
