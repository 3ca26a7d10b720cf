package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/models"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/upload"
)

var errNegativePrice = errors.New("price must not be negative")

// parsePrice accepts "89,90" or "89.90" and rejects negative values.
func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		s = "0"
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errNegativePrice
	}
	return d.Round(2), nil
}

// ProductAdminHandler is the admin CRUD surface over products and images.
type ProductAdminHandler struct {
	*Base
	Uploads *upload.Saver
}

func (h *ProductAdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAllProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	session, _ := h.Sessions.Get(r, AdminSession)
	data := h.page(r)
	data["Products"] = products
	data["Flashes"] = GetFlash(session)
	session.Save(r, w)
	h.render(w, "admin_products.html", data)
}

func (h *ProductAdminHandler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, AdminSession)
	data := h.page(r)
	data["Product"] = nil
	data["Images"] = nil
	data["Flashes"] = GetFlash(session)
	session.Save(r, w)
	h.render(w, "admin_product_form.html", data)
}

func (h *ProductAdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, AdminSession)
	defer session.Save(r, w)

	// ParseMultipartForm alone spools oversized bodies to disk; the reader
	// is what enforces the cap.
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadBytes); err != nil {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Envio muito grande ou inválido."})
		http.Redirect(w, r, "/admin/produtos/novo", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Informe o nome."})
		http.Redirect(w, r, "/admin/produtos/novo", http.StatusSeeOther)
		return
	}

	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Preço inválido."})
		http.Redirect(w, r, "/admin/produtos/novo", http.StatusSeeOther)
		return
	}

	product := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(r.FormValue("description")),
		Price:       price,
		IsActive:    r.FormValue("is_active") == "on",
	}
	if err := h.Store.CreateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Erro ao salvar o produto."})
		http.Redirect(w, r, "/admin/produtos/novo", http.StatusSeeOther)
		return
	}

	h.saveUploads(r, session, product.ID)

	session.AddFlash(FlashMessage{Type: "success", Message: "Produto criado ✅"})
	http.Redirect(w, r, "/admin/produtos", http.StatusSeeOther)
}

func (h *ProductAdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
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
	if product == nil {
		http.NotFound(w, r)
		return
	}

	images, err := h.Store.GetProductImages(id)
	if err != nil {
		http.Error(w, "Error fetching product images", http.StatusInternalServerError)
		return
	}

	session, _ := h.Sessions.Get(r, AdminSession)
	data := h.page(r)
	data["Product"] = product
	data["Images"] = images
	data["Flashes"] = GetFlash(session)
	session.Save(r, w)
	h.render(w, "admin_product_form.html", data)
}

func (h *ProductAdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, AdminSession)
	defer session.Save(r, w)

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
	if product == nil {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadBytes); err != nil {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Envio muito grande ou inválido."})
		http.Redirect(w, r, fmt.Sprintf("/admin/produtos/%d/editar", id), http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Informe o nome."})
		http.Redirect(w, r, fmt.Sprintf("/admin/produtos/%d/editar", id), http.StatusSeeOther)
		return
	}

	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Preço inválido."})
		http.Redirect(w, r, fmt.Sprintf("/admin/produtos/%d/editar", id), http.StatusSeeOther)
		return
	}

	product.Name = name
	product.Description = strings.TrimSpace(r.FormValue("description"))
	product.Price = price
	product.IsActive = r.FormValue("is_active") == "on"

	if err := h.Store.UpdateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Erro ao atualizar o produto."})
		http.Redirect(w, r, fmt.Sprintf("/admin/produtos/%d/editar", id), http.StatusSeeOther)
		return
	}

	h.saveUploads(r, session, id)

	session.AddFlash(FlashMessage{Type: "success", Message: "Produto atualizado ✅"})
	http.Redirect(w, r, fmt.Sprintf("/admin/produtos/%d/editar", id), http.StatusSeeOther)
}

// saveUploads stores every accepted file from the image_files field.
// Files outside the allow-list are skipped with a warning; one bad file
// never sinks the batch.
func (h *ProductAdminHandler) saveUploads(r *http.Request, session *sessions.Session, productID int) {
	if r.MultipartForm == nil {
		return
	}
	for _, header := range r.MultipartForm.File["image_files"] {
		if header.Filename == "" {
			continue
		}
		if !upload.Allowed(header.Filename) {
			session.AddFlash(FlashMessage{Type: "warning", Message: "Formato de foto inválido (use JPG/PNG/WEBP)."})
			continue
		}
		if err := h.saveOne(header, productID); err != nil {
			slog.Error("Failed to store upload", "file", header.Filename, "error", err)
			session.AddFlash(FlashMessage{Type: "warning", Message: "Falha ao salvar a foto " + header.Filename + "."})
		}
	}
}

func (h *ProductAdminHandler) saveOne(header *multipart.FileHeader, productID int) error {
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	url, err := h.Uploads.Save(file, header.Filename)
	if err != nil {
		return err
	}
	return h.Store.AddProductImage(productID, url)
}

// DeleteProduct removes the product and its image rows transactionally,
// then attempts file removal. A file that refuses to go away is logged
// and forgotten.
func (h *ProductAdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, AdminSession)
	defer session.Save(r, w)

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
	if product == nil {
		http.NotFound(w, r)
		return
	}

	images, err := h.Store.GetProductImages(id)
	if err != nil {
		http.Error(w, "Error fetching product images", http.StatusInternalServerError)
		return
	}

	if err := h.Store.DeleteProduct(id); err != nil {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Erro ao excluir o produto."})
		http.Redirect(w, r, "/admin/produtos", http.StatusSeeOther)
		return
	}

	for _, img := range images {
		h.Uploads.Remove(img.ImageURL)
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Produto excluído ✅"})
	http.Redirect(w, r, "/admin/produtos", http.StatusSeeOther)
}

func (h *ProductAdminHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, AdminSession)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	img, err := h.Store.GetProductImageByID(id)
	if err != nil {
		http.Error(w, "Error fetching image", http.StatusInternalServerError)
		return
	}
	if img == nil {
		http.NotFound(w, r)
		return
	}

	if err := h.Store.DeleteProductImage(id); err != nil {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Erro ao remover a foto."})
		http.Redirect(w, r, fmt.Sprintf("/admin/produtos/%d/editar", img.ProductID), http.StatusSeeOther)
		return
	}

	h.Uploads.Remove(img.ImageURL)

	session.AddFlash(FlashMessage{Type: "success", Message: "Foto removida ✅"})
	http.Redirect(w, r, fmt.Sprintf("/admin/produtos/%d/editar", img.ProductID), http.StatusSeeOther)
}
