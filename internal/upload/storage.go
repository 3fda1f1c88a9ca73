package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cduffaut/jobtrack/internal/security"
	"github.com/cduffaut/jobtrack/internal/validation"
)

// Kind désigne la nature d'un document
type Kind string

const (
	KindCV     Kind = "cv"
	KindLettre Kind = "lettre"
)

// Dir renvoie le sous-dossier de stockage
func (k Kind) Dir() string {
	if k == KindLettre {
		return "lettres"
	}
	return "cv"
}

// ParseKind lit le champ "type" du formulaire; absent vaut cv
func ParseKind(value string) (Kind, error) {
	switch strings.TrimSpace(value) {
	case "", string(KindCV):
		return KindCV, nil
	case string(KindLettre):
		return KindLettre, nil
	default:
		return "", validation.New("type", "type de document invalide (cv, lettre)")
	}
}

// StoredFile décrit un document enregistré
type StoredFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Storage enregistre les documents sur disque sous baseDir
type Storage struct {
	baseDir string
	now     func() time.Time
}

// NewStorage crée le stockage et ses sous-dossiers
func NewStorage(baseDir string) (*Storage, error) {
	for _, k := range []Kind{KindCV, KindLettre} {
		if err := os.MkdirAll(filepath.Join(baseDir, k.Dir()), 0755); err != nil {
			return nil, fmt.Errorf("erreur lors de la création du dossier: %w", err)
		}
	}
	return &Storage{baseDir: baseDir, now: time.Now}, nil
}

// BaseDir renvoie la racine servie sous /uploads/
func (s *Storage) BaseDir() string {
	return s.baseDir
}

// Save écrit src sous <baseDir>/<dir>/<userID>_<ms>_<nom nettoyé>
func (s *Storage) Save(userID int, kind Kind, originalName string, src io.Reader) (*StoredFile, error) {
	filename := fmt.Sprintf("%d_%d_%s", userID, s.now().UnixMilli(), security.SanitizeFilename(originalName))
	path := filepath.Join(s.baseDir, kind.Dir(), filename)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création du fichier: %w", err)
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("erreur lors de l'enregistrement du fichier: %w", err)
	}

	return &StoredFile{
		URL:      fmt.Sprintf("/uploads/%s/%s", kind.Dir(), filename),
		Filename: filename,
		Size:     size,
	}, nil
}
