package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/cart"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/config"
	"github.com/JoaoGois72/sonhos-de-croche-loja/internal/store"
)

// Base carries the collaborators every handler needs.
type Base struct {
	Store     *store.Store
	Cfg       *config.Config
	Templates *TemplateCache
	Sessions  *sessions.CookieStore
	Carts     cart.Store
}

func (b *Base) isAdmin(r *http.Request) bool {
	session, _ := b.Sessions.Get(r, AdminSession)
	auth, ok := session.Values["authenticated"].(bool)
	return ok && auth
}

// page assembles the data keys every template expects.
func (b *Base) page(r *http.Request) map[string]interface{} {
	return map[string]interface{}{
		"StoreName":          b.Cfg.StoreName,
		"PixDiscountPercent": b.Cfg.PixDiscountPercent,
		"CartCount":          b.Carts.Load(r).Count(),
		"IsAdmin":            b.isAdmin(r),
		"CsrfField":          csrf.TemplateField(r),
	}
}

func (b *Base) render(w http.ResponseWriter, name string, data map[string]interface{}) {
	tmpl := b.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, data)
}

// flash appends a flash message to the visitor session.
func (b *Base) flash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	session, _ := b.Sessions.Get(r, PublicSession)
	session.AddFlash(FlashMessage{Type: kind, Message: msg})
	session.Save(r, w)
}

// popFlashes drains pending visitor flash messages.
func (b *Base) popFlashes(w http.ResponseWriter, r *http.Request) []FlashMessage {
	session, _ := b.Sessions.Get(r, PublicSession)
	messages := GetFlash(session)
	session.Save(r, w)
	return messages
}
