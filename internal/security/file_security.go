// internal/security/file_security.go
package security

import (
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cduffaut/jobtrack/internal/models"
)

// Configuration des uploads
const (
	MaxFileSize       = 5 * 1024 * 1024
	maxFileNameLength = 100
)

// Types MIME autorisés et extensions correspondantes
var allowedMimeTypes = map[string][]string{
	"application/pdf":    {".pdf"},
	"application/msword": {".doc"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {".docx"},
}

// FileValidationError représente une erreur de validation de fichier
type FileValidationError struct {
	Message string
}

func (e FileValidationError) Error() string {
	return e.Message
}

// Unwrap permet errors.Is(err, models.ErrValidation)
func (e FileValidationError) Unwrap() error { return models.ErrValidation }

// ValidateDocument valide un CV ou une lettre uploadé: type MIME déclaré,
// extension cohérente et taille. Le contenu n'est pas inspecté.
func ValidateDocument(fileHeader *multipart.FileHeader, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}

	if fileHeader.Size == 0 {
		return FileValidationError{Message: "le fichier est vide"}
	}

	if fileHeader.Size > maxSize {
		return FileValidationError{
			Message: fmt.Sprintf("le fichier est trop volumineux (max %d Mo)", maxSize/1024/1024),
		}
	}

	// Vérifier le type MIME déclaré
	contentType := declaredType(fileHeader.Header.Get("Content-Type"))
	extensions, ok := allowedMimeTypes[contentType]
	if !ok {
		return FileValidationError{
			Message: "Type de fichier non autorisé. Seuls les PDF et Word sont acceptés.",
		}
	}

	// Vérifier que l'extension correspond au type déclaré
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, allowed := range extensions {
		if ext == allowed {
			return nil
		}
	}

	return FileValidationError{
		Message: "l'extension du fichier ne correspond pas à son type",
	}
}

func declaredType(header string) string {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(header))
	}
	return mediaType
}

// SanitizeFilename nettoie un nom de fichier
func SanitizeFilename(filename string) string {
	// les navigateurs Windows envoient parfois le chemin complet
	filename = filepath.Base(strings.ReplaceAll(filename, "\\", "/"))

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('_')
		case r == ' ':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	filename = strings.ReplaceAll(b.String(), "..", "_")

	// Limiter la longueur
	if len(filename) > maxFileNameLength {
		ext := filepath.Ext(filename)
		if len(ext) > 10 {
			ext = ""
		}
		name := strings.TrimSuffix(filename, ext)
		name = truncateBytes(name, maxFileNameLength-len(ext))
		filename = name + ext
	}

	// S'assurer qu'il y a au moins un nom
	if filename == "" || filename == "." || filename == "_" {
		filename = "file"
	}

	return filename
}

// truncateBytes coupe sans casser un caractère multi-octets
func truncateBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && (s[max]&0xC0) == 0x80 {
		max--
	}
	return s[:max]
}
