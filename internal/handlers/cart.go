package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/cart"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/checkout"
)

// CartHandler manages the session-backed cart.
type CartHandler struct {
	*Base
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	c := h.Carts.Load(r)
	lines, total, err := checkout.Resolve(h.Store, c)
	if err != nil {
		http.Error(w, "Error loading cart", http.StatusInternalServerError)
		return
	}

	data := h.page(r)
	data["Lines"] = lines
	data["Total"] = total
	data["Flashes"] = h.popFlashes(w, r)
	h.render(w, "cart.html", data)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
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

	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil {
		qty = 1
	}

	c := h.Carts.Load(r)
	c.Add(id, qty)
	if err := h.Carts.Save(r, w, c); err != nil {
		http.Error(w, "Error saving cart", http.StatusInternalServerError)
		return
	}

	h.flash(w, r, "success", "Adicionado ao carrinho ✅")
	http.Redirect(w, r, "/carrinho", http.StatusSeeOther)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	quantities := make(map[string]string)
	for key, values := range r.PostForm {
		pid, ok := strings.CutPrefix(key, "qty_")
		if !ok || len(values) == 0 {
			continue
		}
		quantities[pid] = values[0]
	}

	c := h.Carts.Load(r)
	c.Update(quantities)
	if err := h.Carts.Save(r, w, c); err != nil {
		http.Error(w, "Error saving cart", http.StatusInternalServerError)
		return
	}

	h.flash(w, r, "success", "Carrinho atualizado ✅")
	http.Redirect(w, r, "/carrinho", http.StatusSeeOther)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Save(r, w, cart.New()); err != nil {
		http.Error(w, "Error saving cart", http.StatusInternalServerError)
		return
	}
	h.flash(w, r, "success", "Carrinho esvaziado ✅")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
