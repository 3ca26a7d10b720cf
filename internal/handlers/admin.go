package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// dashboardOrderLimit caps the admin dashboard listing.
const dashboardOrderLimit = 80

// AdminHandler covers login, the dashboard and order status updates.
type AdminHandler struct {
	*Base
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, AdminSession)
	data := h.page(r)
	data["Flashes"] = GetFlash(session)
	session.Save(r, w)
	h.render(w, "admin_login.html", data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, AdminSession)

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")

	user, err := h.Store.GetUserByEmail(email)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Erro interno. Tente novamente."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		session.AddFlash(FlashMessage{Type: "danger", Message: "Login inválido."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	session.Values["authenticated"] = true
	session.Values["user_id"] = user.ID
	session.Options.Path = "/"
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Admin login", "user_id", user.ID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, AdminSession)
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	h.flash(w, r, "success", "Saiu do sistema.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AuthMiddleware ensures the request carries an authenticated admin session.
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.isAdmin(r) {
			slog.Info("Unauthenticated admin access, redirecting to login", "path", r.URL.Path)
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.GetRecentOrders(dashboardOrderLimit)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	session, _ := h.Sessions.Get(r, AdminSession)
	data := h.page(r)
	data["Orders"] = orders
	data["Flashes"] = GetFlash(session)
	session.Save(r, w)
	h.render(w, "admin_dashboard.html", data)
}

// UpdateOrderStatus overwrites the order's free-text status. A blank status
// is a no-op, not an error.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		http.Error(w, "Error fetching order", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.NotFound(w, r)
		return
	}

	session, _ := h.Sessions.Get(r, AdminSession)
	status := strings.TrimSpace(r.FormValue("status"))
	if status != "" {
		if err := h.Store.UpdateOrderStatus(id, status); err != nil {
			http.Error(w, "Error updating status", http.StatusInternalServerError)
			return
		}
		session.AddFlash(FlashMessage{Type: "success", Message: "Status atualizado ✅"})
	}
	session.Save(r, w)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
