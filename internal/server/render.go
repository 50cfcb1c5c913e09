package server

import (
	"net/http"

	"billed/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	session, _ := r.Context().Value(contextKeySession).(types.Session)

	if setter, ok := data.(types.NavbarDataSetter); ok {
		setter.SetNavbarData(types.NavbarData{
			IsAuthenticated: session.Email != "",
			UserEmail:       session.Email,
			IsAdmin:         session.IsAdmin(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.templates.ExecuteTemplate(w, templateName, data)
}
