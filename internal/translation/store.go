package translation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"lingye.co/catalog/internal/language"
)

//go:embed translation_file.schema.json
var translationFileSchemaJSON string

var (
	fileSchemaOnce sync.Once
	fileSchema     *jsonschema.Schema
	fileSchemaErr  error
)

// FileStore keeps one JSON document per (kind, language) under a directory.
// Reads are tolerant: a missing, unreadable or malformed file is an empty
// mapping.
type FileStore struct {
	dir    string
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(dir string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file backing one kind and language.
func (s *FileStore) Path(kind Kind, lang string) string {
	return filepath.Join(s.dir, fileName(kind, lang))
}

func fileName(kind Kind, lang string) string {
	return fmt.Sprintf("%s_%s.json", kind, language.Base(lang))
}

// Lock serializes load-modify-save cycles on one file within this process.
func (s *FileStore) Lock(kind Kind, lang string) func() {
	key := fileName(kind, lang)
	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Exists reports whether a durable file is present for kind and language.
func (s *FileStore) Exists(kind Kind, lang string) bool {
	info, err := os.Stat(s.Path(kind, lang))
	return err == nil && !info.IsDir()
}

// Load returns the full mapping for one kind and language.
func (s *FileStore) Load(kind Kind, lang string) map[string]string {
	path := s.Path(kind, lang)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", path).Msg("read translation file")
		}
		return map[string]string{}
	}

	mapping, err := decodeTranslationFile(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("ignoring invalid translation file")
		return map[string]string{}
	}
	return mapping
}

// Save replaces the whole file. The write goes through a temp file and a
// rename so concurrent readers never observe a partial document.
func (s *FileStore) Save(kind Kind, lang string, mapping map[string]string) error {
	if mapping == nil {
		mapping = map[string]string{}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create translations dir: %w", err)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(mapping); err != nil {
		return fmt.Errorf("encode %s: %w", fileName(kind, lang), err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+fileName(kind, lang)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.Path(kind, lang)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", fileName(kind, lang), err)
	}
	return nil
}

// GetField returns the stored translation for one field of one record.
// Source-language lookups always miss.
func (s *FileStore) GetField(kind Kind, objectID int64, field, lang string) (string, bool) {
	if language.IsSource(lang) {
		return "", false
	}
	value, ok := s.Load(kind, lang)[FieldKey{Field: field, ObjectID: objectID}.String()]
	return value, ok
}

// Remove deletes the file for kind and language. Missing files are not an
// error.
func (s *FileStore) Remove(kind Kind, lang string) error {
	unlock := s.Lock(kind, lang)
	defer unlock()

	err := os.Remove(s.Path(kind, lang))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// StoredFile describes one durable file found on disk.
type StoredFile struct {
	Name     string
	Kind     Kind
	Language string
	Size     int64
}

// Files lists the durable files present, sorted by name. Names that do not
// match "{kind}_{lang}.json" for a known kind are skipped.
func (s *FileStore) Files() ([]StoredFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	files := make([]StoredFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind, lang, ok := parseFileName(entry.Name())
		if !ok {
			continue
		}
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		files = append(files, StoredFile{Name: entry.Name(), Kind: kind, Language: lang, Size: size})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func parseFileName(name string) (Kind, string, bool) {
	base, ok := strings.CutSuffix(name, ".json")
	if !ok || strings.HasPrefix(base, ".") {
		return "", "", false
	}
	idx := strings.LastIndexByte(base, '_')
	if idx <= 0 || idx == len(base)-1 {
		return "", "", false
	}
	kind, err := ParseKind(base[:idx])
	if err != nil {
		return "", "", false
	}
	return kind, base[idx+1:], true
}

func decodeTranslationFile(data []byte) (map[string]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	schema, err := loadFileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	object, _ := value.(map[string]any)
	mapping := make(map[string]string, len(object))
	for key, raw := range object {
		text, _ := raw.(string)
		mapping[key] = text
	}
	return mapping, nil
}

func loadFileSchema() (*jsonschema.Schema, error) {
	fileSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("translation_file.schema.json", strings.NewReader(translationFileSchemaJSON)); err != nil {
			fileSchemaErr = fmt.Errorf("add translation file schema: %w", err)
			return
		}
		fileSchema, fileSchemaErr = compiler.Compile("translation_file.schema.json")
		if fileSchemaErr != nil {
			fileSchemaErr = fmt.Errorf("compile translation file schema: %w", fileSchemaErr)
		}
	})
	return fileSchema, fileSchemaErr
}
