package push

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/chatcore/internal/logger"
)

// VAPIDKeys: пара ключей, которой сервер подписывает Web Push запросы.
type VAPIDKeys struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

func (k *VAPIDKeys) complete() bool {
	return k != nil && k.PublicKey != "" && k.PrivateKey != ""
}

// ResolveKeys берёт ключи из конфигурации, если заданы оба, иначе из файла path.
func ResolveKeys(public, private, path string) (*VAPIDKeys, error) {
	if fromEnv := (&VAPIDKeys{PublicKey: public, PrivateKey: private}); fromEnv.complete() {
		return fromEnv, nil
	}
	return EnsureVAPIDKeys(path)
}

// EnsureVAPIDKeys читает пару из path. Если файла нет или пара неполная,
// создаёт новую и пытается её записать; ошибка записи только логируется.
func EnsureVAPIDKeys(path string) (*VAPIDKeys, error) {
	if stored := readKeyFile(path); stored.complete() {
		return stored, nil
	}
	priv, pub, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		return nil, fmt.Errorf("generate vapid keys: %w", err)
	}
	keys := &VAPIDKeys{PublicKey: pub, PrivateKey: priv}
	if err := writeKeyFile(path, keys); err != nil {
		logger.Errorf("push: VAPID-ключи не записаны в %s: %v", path, err)
	} else {
		logger.Infof("push: новые VAPID-ключи записаны в %s", path)
	}
	return keys, nil
}

// readKeyFile возвращает nil, если файл не читается или битый.
func readKeyFile(path string) *VAPIDKeys {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	keys := new(VAPIDKeys)
	if json.Unmarshal(raw, keys) != nil {
		return nil
	}
	return keys
}

func writeKeyFile(path string, keys *VAPIDKeys) error {
	raw, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
