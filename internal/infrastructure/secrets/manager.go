// Package secrets expone la configuración dinámica (catálogos de impuestos,
// credenciales de conectores) guardada como un único documento JSON en AWS
// Secrets Manager, con caché en memoria por TTL para no pegar a AWS en cada
// request.
package secrets

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/jhoicas/extraccion-core/internal/domain"
)

// SecretsAPI subconjunto del cliente de AWS que usa el manager.
// Permite un fake en tests sin tocar la red.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, opts ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	PutSecretValue(ctx context.Context, in *secretsmanager.PutSecretValueInput, opts ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
}

// Manager lee y escribe claves dentro de un documento JSON plano
// {"clave": "valor", ...} almacenado bajo un único secreto.
// Las escrituras son read-modify-write del documento completo: sin
// concurrencia externa gana el último escritor.
type Manager struct {
	client     SecretsAPI
	secretName string
	ttl        time.Duration

	mu       sync.Mutex
	cached   map[string]string
	cachedAt time.Time
}

// NewManager construye el manager. ttl<=0 desactiva la caché.
func NewManager(client SecretsAPI, secretName string, ttl time.Duration) *Manager {
	return &Manager{client: client, secretName: secretName, ttl: ttl}
}

// Get devuelve el valor de una clave del documento.
func (m *Manager) Get(ctx context.Context, key string) (string, error) {
	doc, err := m.document(ctx)
	if err != nil {
		return "", err
	}
	value, ok := doc[key]
	if !ok {
		return "", domain.NewMissingSecretKeyError(m.secretName, key)
	}
	return value, nil
}

// Set escribe una clave y persiste el documento completo.
func (m *Manager) Set(ctx context.Context, key, value string) error {
	return m.update(ctx, func(doc map[string]string) {
		doc[key] = value
	})
}

// Delete elimina una clave. Borrar una clave inexistente no es error.
func (m *Manager) Delete(ctx context.Context, key string) error {
	return m.update(ctx, func(doc map[string]string) {
		delete(doc, key)
	})
}

// Invalidate descarta la caché; la próxima lectura vuelve a AWS.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.cached = nil
	m.cachedAt = time.Time{}
	m.mu.Unlock()
}

func (m *Manager) document(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cached != nil && m.ttl > 0 && time.Since(m.cachedAt) < m.ttl {
		return m.cached, nil
	}
	doc, err := m.fetch(ctx)
	if err != nil {
		return nil, err
	}
	m.cached = doc
	m.cachedAt = time.Now()
	return doc, nil
}

func (m *Manager) fetch(ctx context.Context) (map[string]string, error) {
	out, err := m.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(m.secretName),
	})
	if err != nil {
		return nil, domain.NewSecretNotFoundError(m.secretName)
	}
	var doc map[string]string
	if out.SecretString != nil && *out.SecretString != "" {
		if err := json.Unmarshal([]byte(*out.SecretString), &doc); err != nil {
			return nil, domain.NewAWSConnectionError("El secreto no contiene un documento JSON válido")
		}
	}
	if doc == nil {
		doc = map[string]string{}
	}
	return doc, nil
}

func (m *Manager) update(ctx context.Context, mutate func(map[string]string)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.fetch(ctx)
	if err != nil {
		return err
	}
	mutate(doc)

	raw, err := json.Marshal(doc)
	if err != nil {
		return domain.NewAWSConnectionError("No se pudo serializar el documento de secretos")
	}
	if _, err := m.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(m.secretName),
		SecretString: aws.String(string(raw)),
	}); err != nil {
		return domain.NewAWSConnectionError("No se pudo escribir el secreto en AWS Secrets Manager")
	}
	m.cached = doc
	m.cachedAt = time.Now()
	return nil
}
