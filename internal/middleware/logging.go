package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields := log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"ua":     r.Header.Get("User-Agent"),
			}
			if workoutID := mux.Vars(r)["workoutId"]; workoutID != "" {
				fields["workout_id"] = workoutID
			}
			log.WithFields(fields).Debug(" ====> request")
			next.ServeHTTP(w, r)
		})
	}
}
