package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// per-user session cookie store (file, 0600) with AES-GCM obfuscation.
// Not a replacement for OS keychains but avoids a plain-text cookie on disk.

const fileName = "sessions.json"

// ErrNoSession is returned when no cookie is stored for a server.
var ErrNoSession = errors.New("no stored session")

type sessionFile struct {
	Sessions map[string]string `json:"sessions"` // server -> base64(ciphertext)
}

// Store keeps one session cookie per server base URL.
type Store struct {
	path string
}

// NewStore keeps its file in dir, creating dir if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create secrets dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, fileName)}, nil
}

// DefaultStore uses the user's config directory.
func DefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(dir, "foodrun"))
}

func (s *Store) SaveSession(server, cookie string) error {
	if server = norm(server); server == "" {
		return fmt.Errorf("server required")
	}
	sf, err := load(s.path)
	if err != nil {
		return err
	}
	if sf.Sessions == nil {
		sf.Sessions = map[string]string{}
	}
	ct, err := encrypt([]byte(cookie))
	if err != nil {
		return err
	}
	sf.Sessions[server] = base64.StdEncoding.EncodeToString(ct)
	return save(s.path, sf)
}

func (s *Store) LoadSession(server string) (string, error) {
	if server = norm(server); server == "" {
		return "", fmt.Errorf("server required")
	}
	sf, err := load(s.path)
	if err != nil {
		return "", err
	}
	enc, ok := sf.Sessions[server]
	if !ok {
		return "", ErrNoSession
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("decode session: %w", err)
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", fmt.Errorf("decrypt session: %w", err)
	}
	return string(pt), nil
}

// DeleteSession forgets the cookie for server. Deleting a missing entry is not an error.
func (s *Store) DeleteSession(server string) error {
	if server = norm(server); server == "" {
		return fmt.Errorf("server required")
	}
	sf, err := load(s.path)
	if err != nil {
		return err
	}
	if _, ok := sf.Sessions[server]; !ok {
		return nil
	}
	delete(sf.Sessions, server)
	return save(s.path, sf)
}

func load(path string) (sessionFile, error) {
	var sf sessionFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sessionFile{}, nil
		}
		return sf, err
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("parse %s: %w", path, err)
	}
	return sf, nil
}

func save(path string, sf sessionFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func norm(s string) string {
	return strings.TrimRight(strings.TrimSpace(strings.ToLower(s)), "/")
}

func masterKey() []byte {
	base := fmt.Sprintf("foodrun-%s-%s", runtime.GOOS, os.Getenv("USER"))
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plain []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
