package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucaromano98/debiti-stop/internal/models"
)

var ErrEstensioneNonAmmessa = errors.New("estensione file non ammessa")

// estensioni accettate in upload (come il validatore del gestionale storico)
var estensioniAmmesse = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// Storage astrae il backend dei documenti. In produzione può essere un
// object storage S3-compatibile; qui è fornito il backend su disco.
type Storage interface {
	Save(relPath string, r io.Reader) error
	Open(relPath string) (io.ReadCloser, error)
	Delete(relPath string) error
}

// Slug normalizza un nome file: minuscole, tutto ciò che non è
// alfanumerico diventa "-", senza ripetizioni né bordi.
func Slug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// ValidaEstensione controlla il nome file originale contro la whitelist.
func ValidaEstensione(filename string) error {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := estensioniAmmesse[ext]; !ok {
		return fmt.Errorf("%w: %q", ErrEstensioneNonAmmessa, ext)
	}
	return nil
}

// PercorsoDocumento deriva il percorso di archiviazione:
// client_<id>/<categoria>/<unix>_<slug><.ext minuscola>.
// Il prefisso temporale evita collisioni tra upload con lo stesso nome.
func PercorsoDocumento(clienteID uint, categoria models.Categoria, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	safe := fmt.Sprintf("%d_%s%s", now.Unix(), Slug(base), ext)
	return fmt.Sprintf("client_%d/%s/%s", clienteID, categoria, safe)
}

// Locale salva i documenti sotto una directory radice (MEDIA_ROOT).
type Locale struct {
	Root string
}

func NewLocale(root string) *Locale {
	return &Locale{Root: root}
}

func (l *Locale) abs(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("percorso non valido: %q", relPath)
	}
	return filepath.Join(l.Root, clean), nil
}

func (l *Locale) Save(relPath string, r io.Reader) error {
	dst, err := l.abs(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (l *Locale) Open(relPath string) (io.ReadCloser, error) {
	src, err := l.abs(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(src)
}

func (l *Locale) Delete(relPath string) error {
	dst, err := l.abs(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
