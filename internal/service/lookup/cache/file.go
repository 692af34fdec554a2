package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/darkkaiser/hoplink/pkg/concurrency"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/iancoleman/strcase"
)

const (
	defaultCacheDirectory = "data/cache"

	entryFileExt    = ".json"
	tempFilePattern = "cache-entry-*.tmp"

	// staleTempFileAge 이 시간보다 오래된 임시 파일은 비정상 종료의 잔존물로 보고 삭제합니다.
	staleTempFileAge = time.Hour
)

// fileStore 항목마다 하나의 JSON 파일을 기록합니다.
// 파일명은 "<네임스페이스>-<키 해시>.json" 형식이며 기록은 임시 파일 교체 방식으로 원자적입니다.
type fileStore struct {
	baseDir string

	locks *concurrency.KeyedMutex[string]

	now func() time.Time
}

var _ Store = (*fileStore)(nil)

// NewFileStore dir 아래에 항목을 저장하는 파일 캐시를 생성합니다. dir이 비어 있으면 data/cache를 사용합니다.
func NewFileStore(dir string) (Store, error) {
	return newFileStore(dir, time.Now)
}

func newFileStore(dir string, now func() time.Time) (*fileStore, error) {
	if dir == "" {
		dir = defaultCacheDirectory
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, newErrDirectoryAccessFailed(err, dir)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, newErrDirectoryAccessFailed(err, absDir)
	}

	s := &fileStore{
		baseDir: absDir,
		locks:   concurrency.NewKeyedMutex[string](),
		now:     now,
	}

	s.removeStaleTempFiles()

	return s, nil
}

func (s *fileStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}

	var e entry
	err = s.locks.WithLock(path, func() error {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			if os.IsNotExist(readErr) {
				return ErrCacheMiss
			}
			return newErrReadFailed(readErr)
		}

		if jsonErr := json.Unmarshal(data, &e); jsonErr != nil {
			_ = os.Remove(path)
			return newErrCorruptEntry(jsonErr)
		}

		if e.expired(s.now()) {
			_ = os.Remove(path)
			return ErrCacheMiss
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 해시 충돌 시 다른 키의 값을 돌려주지 않는다.
	if e.Key != key {
		return nil, ErrCacheMiss
	}

	return e.Value, nil
}

func (s *fileStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(entry{Key: key, Value: value, ExpiresAt: s.now().Add(ttl)})
	if err != nil {
		return newErrWriteFailed(err)
	}

	return s.locks.WithLock(path, func() error {
		return s.writeAtomic(path, data)
	})
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	return s.locks.WithLock(path, func() error {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return newErrWriteFailed(err)
		}
		return nil
	})
}

func (s *fileStore) Clear(ctx context.Context) error {
	_, err := s.sweep(ctx, func(string) bool { return true })
	return err
}

func (s *fileStore) PurgeExpired(ctx context.Context) (int, error) {
	now := s.now()

	return s.sweep(ctx, func(path string) bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return false
		}

		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			return true
		}
		return e.expired(now)
	})
}

func (s *fileStore) Close() error {
	return nil
}

// sweep 항목 파일마다 shouldRemove를 평가하여 삭제하고 삭제한 개수를 반환합니다.
func (s *fileStore) sweep(ctx context.Context, shouldRemove func(path string) bool) (int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return 0, newErrDirectoryAccessFailed(err, s.baseDir)
	}

	removed := 0
	for _, de := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if de.IsDir() || filepath.Ext(de.Name()) != entryFileExt {
			continue
		}

		path := filepath.Join(s.baseDir, de.Name())
		_ = s.locks.WithLock(path, func() error {
			if !shouldRemove(path) {
				return nil
			}
			if err := os.Remove(path); err != nil {
				if !os.IsNotExist(err) {
					applog.WithComponentAndFields(component, applog.Fields{
						"file":  path,
						"error": err,
					}).Warn("캐시 파일 삭제 실패")
				}
				return nil
			}
			removed++
			return nil
		})
	}

	return removed, nil
}

// pathFor 키에 해당하는 파일 경로를 계산하고 저장 디렉토리 이탈 여부를 검증합니다.
func (s *fileStore) pathFor(key string) (string, error) {
	sum := sha256.Sum256([]byte(key))

	prefix := strcase.ToKebab(string(NamespaceOf(key)))
	prefix = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, prefix)
	if prefix == "" {
		prefix = "entry"
	}

	name := prefix + "-" + hex.EncodeToString(sum[:16]) + entryFileExt
	path := filepath.Clean(filepath.Join(s.baseDir, name))

	rel, err := filepath.Rel(s.baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		applog.WithComponentAndFields(component, applog.Fields{
			"base_dir": s.baseDir,
			"path":     path,
		}).Error("캐시 파일 경로 생성 차단: 경로 이탈 시도 감지")

		return "", ErrPathTraversalDetected
	}

	return path, nil
}

func (s *fileStore) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return newErrWriteFailed(err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return newErrWriteFailed(err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return newErrWriteFailed(err)
	}
	if err := tmpFile.Close(); err != nil {
		return newErrWriteFailed(err)
	}

	if err := renameWithRetry(tmpPath, path); err != nil {
		return newErrWriteFailed(err)
	}

	return nil
}

// renameWithRetry 다른 프로세스가 대상 파일을 열고 있어 교체가 일시적으로 실패하는 경우(Windows)를 위해 몇 차례 재시도합니다.
func renameWithRetry(oldPath, newPath string) error {
	const maxAttempts = 5
	const retryDelay = 10 * time.Millisecond

	var lastErr error
	for range maxAttempts {
		if lastErr = os.Rename(oldPath, newPath); lastErr == nil {
			return nil
		}
		time.Sleep(retryDelay)
	}

	return lastErr
}

func (s *fileStore) removeStaleTempFiles() {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return
	}

	threshold := s.now().Add(-staleTempFileAge)
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		if matched, _ := filepath.Match(tempFilePattern, de.Name()); !matched {
			continue
		}

		info, err := de.Info()
		if err != nil || info.ModTime().After(threshold) {
			continue
		}

		path := filepath.Join(s.baseDir, de.Name())
		if err := os.Remove(path); err == nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"file": path,
			}).Info("이전 실행에서 남은 캐시 임시 파일을 삭제했습니다")
		}
	}
}
