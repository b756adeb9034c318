package botnotify

import (
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

// SendServerError posts a 5xx report to the notification bot; a blank addr disables it.
func SendServerError(addr string, statusCode int, method, path, message string) {
	if addr == "" {
		return
	}
	payload := fmt.Sprintf(
		`{"code":%d,"method":%q,"path":%q,"error":%q}`,
		statusCode, method, path, message)
	resp, err := http.Post(addr, "application/json", strings.NewReader(payload))
	if err != nil {
		log.WithError(err).Warn("error sending error notification")
		return
	}
	_ = resp.Body.Close()
}
