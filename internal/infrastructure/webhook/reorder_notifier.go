package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/estebancaso/abasto-api/internal/application/replenishment"
)

// Verificar en tiempo de compilación que ReorderNotifier implementa el puerto.
var _ replenishment.ReorderNotifier = (*ReorderNotifier)(nil)

// ReorderNotifier notifica la creación de solicitudes de reabastecimiento a un
// webhook externo (típicamente un flujo de automatización que arma el mensaje
// de WhatsApp al proveedor). El canal es best-effort: el caller loguea y
// descarta cualquier error de aquí.
type ReorderNotifier struct {
	url        string
	httpClient *http.Client
}

// NewReorderNotifier construye el adaptador. Si url está vacío usar
// replenishment.NopNotifier en su lugar.
func NewReorderNotifier(url string, timeout time.Duration) *ReorderNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ReorderNotifier{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// reorderPayload es el JSON que recibe el webhook.
type reorderPayload struct {
	ProviderPhone string `json:"providerPhone"`
	ProductName   string `json:"productName"`
	Quantity      int64  `json:"quantity"`
}

// NotifyReorder envía la notificación. Cualquier respuesta no-2xx cuenta como error.
func (n *ReorderNotifier) NotifyReorder(ctx context.Context, providerPhone, productName string, quantity int64) error {
	body, err := json.Marshal(reorderPayload{
		ProviderPhone: providerPhone,
		ProductName:   productName,
		Quantity:      quantity,
	})
	if err != nil {
		return fmt.Errorf("webhook: serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: enviar notificación: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: respuesta %d", resp.StatusCode)
	}
	return nil
}
