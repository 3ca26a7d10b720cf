package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// ShopHandler serves the public catalog.
type ShopHandler struct {
	*Base
}

func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	products, err := h.Store.GetActiveProducts(q)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	data := h.page(r)
	data["Products"] = products
	data["Query"] = q
	data["Flashes"] = h.popFlashes(w, r)
	h.render(w, "index.html", data)
}

func (h *ShopHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}
	if product == nil || !product.IsActive {
		http.NotFound(w, r)
		return
	}

	images, err := h.Store.GetProductImages(product.ID)
	if err != nil {
		http.Error(w, "Error fetching product images", http.StatusInternalServerError)
		return
	}

	data := h.page(r)
	data["Product"] = product
	data["Images"] = images
	data["Flashes"] = h.popFlashes(w, r)
	h.render(w, "product.html", data)
}
