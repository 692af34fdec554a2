package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

type mockLookupRunner struct {
	mock.Mock
}

func (m *mockLookupRunner) Lookup(ctx context.Context, req lookup.Request) (*lookup.Result, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*lookup.Result)
	return res, args.Error(1)
}

func (m *mockLookupRunner) BatchMatch(ctx context.Context, sources []*product.Record, mode string) ([]lookup.MatchOutcome, error) {
	args := m.Called(ctx, sources, mode)
	outcomes, _ := args.Get(0).([]lookup.MatchOutcome)
	return outcomes, args.Error(1)
}

func (m *mockLookupRunner) PurgeCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockLookupRunner) PurgeExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// runApp 모의 서비스를 사용하여 CLI를 실행하고 출력과 열린 설정 파일 경로를 반환합니다.
func runApp(t *testing.T, runner *mockLookupRunner, args ...string) (string, string, bool, error) {
	t.Helper()

	var (
		out        bytes.Buffer
		configFile string
		closed     bool
	)

	open := func(_ context.Context, file string, _ bool) (lookupRunner, func(), error) {
		configFile = file
		return runner, func() { closed = true }, nil
	}

	err := newApp(&out, open).Run(append([]string{"hoplink-cli"}, args...))

	return out.String(), configFile, closed, err
}

// =============================================================================
// lookup 명령
// =============================================================================

func TestLookupCommand(t *testing.T) {
	t.Parallel()

	t.Run("검색어와 옵션을 조회 요청으로 전달한다", func(t *testing.T) {
		t.Parallel()

		runner := &mockLookupRunner{}
		runner.On("Lookup", mock.Anything, lookup.Request{
			Query:   "化粧水 500ml",
			Kind:    lookup.KindKeyword,
			Mode:    "strict",
			Options: map[string]any{"search_index": "Beauty", "max_price": "3000"},
		}).Return(&lookup.Result{Query: "化粧水 500ml", Status: lookup.StatusNoMatch}, nil)

		out, configFile, closed, err := runApp(t, runner,
			"--config", "custom.json",
			"lookup", "--kind", "keyword", "--mode", "strict",
			"--option", "search_index=Beauty", "--option", "max_price=3000",
			"化粧水", "500ml",
		)

		require.NoError(t, err)
		runner.AssertExpectations(t)
		assert.Equal(t, "custom.json", configFile)
		assert.True(t, closed, "실행 후 서비스가 닫혀야 함")

		var res lookup.Result
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, lookup.StatusNoMatch, res.Status)
	})

	t.Run("검색어가 없으면 실패한다", func(t *testing.T) {
		t.Parallel()

		runner := &mockLookupRunner{}
		_, _, _, err := runApp(t, runner, "lookup")

		require.Error(t, err)
		runner.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	})

	t.Run("잘못된 옵션 형식", func(t *testing.T) {
		t.Parallel()

		runner := &mockLookupRunner{}
		_, _, _, err := runApp(t, runner, "lookup", "--option", "novalue", "4901234567894")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "key=value")
	})

	t.Run("서비스 에러를 그대로 반환한다", func(t *testing.T) {
		t.Parallel()

		runner := &mockLookupRunner{}
		runner.On("Lookup", mock.Anything, mock.Anything).Return(nil, apperrors.New(apperrors.InvalidInput, "잘못된 JAN 코드"))

		_, _, closed, err := runApp(t, runner, "lookup", "--kind", "jan", "123")

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		assert.True(t, closed)
	})
}

// =============================================================================
// match 명령
// =============================================================================

func TestMatchCommand(t *testing.T) {
	t.Parallel()

	writeSources := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "sources.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("원본 상품 목록을 일괄 매칭한다", func(t *testing.T) {
		t.Parallel()

		path := writeSources(t, `[{"platform":"rakuten","id":"shop:item-1","name":"テスト商品","price":1000}]`)

		runner := &mockLookupRunner{}
		runner.On("BatchMatch", mock.Anything, mock.MatchedBy(func(sources []*product.Record) bool {
			return len(sources) == 1 && sources[0].ID == "shop:item-1"
		}), "loose").Return([]lookup.MatchOutcome{{Status: lookup.StatusNoMatch}}, nil)

		out, _, _, err := runApp(t, runner, "match", "--file", path, "--mode", "loose")

		require.NoError(t, err)
		runner.AssertExpectations(t)
		assert.Contains(t, out, `"status": "no_match"`)
	})

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "잘못된 JSON", content: `[{"platform":`, wantMsg: "JSON"},
		{name: "빈 목록", content: `[]`, wantMsg: "비어 있습니다"},
		{name: "null 항목", content: `[null]`, wantMsg: "sources[0]"},
		{name: "유효하지 않은 레코드", content: `[{"platform":"yahoo","id":"x"}]`, wantMsg: "sources[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := &mockLookupRunner{}
			_, _, _, err := runApp(t, runner, "match", "--file", writeSources(t, tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			runner.AssertNotCalled(t, "BatchMatch", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("파일이 없으면 실패한다", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := runApp(t, &mockLookupRunner{}, "match", "--file", filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
	})
}

// =============================================================================
// cache / version 명령
// =============================================================================

func TestCacheCommand(t *testing.T) {
	t.Parallel()

	t.Run("clear", func(t *testing.T) {
		t.Parallel()

		runner := &mockLookupRunner{}
		runner.On("PurgeCache", mock.Anything).Return(nil)

		out, _, closed, err := runApp(t, runner, "cache", "clear")

		require.NoError(t, err)
		assert.Contains(t, out, "캐시를 모두 비웠습니다")
		assert.True(t, closed)
	})

	t.Run("clear 실패", func(t *testing.T) {
		t.Parallel()

		runner := &mockLookupRunner{}
		runner.On("PurgeCache", mock.Anything).Return(errors.New("disk full"))

		_, _, _, err := runApp(t, runner, "cache", "clear")

		assert.EqualError(t, err, "disk full")
	})

	t.Run("purge-expired", func(t *testing.T) {
		t.Parallel()

		runner := &mockLookupRunner{}
		runner.On("PurgeExpired", mock.Anything).Return(3, nil)

		out, _, _, err := runApp(t, runner, "cache", "purge-expired")

		require.NoError(t, err)
		assert.Contains(t, out, "3개")
	})
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var opened bool
	var out bytes.Buffer

	app := newApp(&out, func(context.Context, string, bool) (lookupRunner, func(), error) {
		opened = true
		return nil, nil, errors.New("열리면 안 됨")
	})

	require.NoError(t, app.Run([]string{"hoplink-cli", "--pretty=false", "version"}))
	assert.False(t, opened, "version 명령은 서비스를 열지 않아야 함")
	assert.True(t, strings.HasPrefix(out.String(), `{"version":"`+Version+`"`))
}

func TestOpenerError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := newApp(&out, func(context.Context, string, bool) (lookupRunner, func(), error) {
		return nil, nil, apperrors.New(apperrors.System, "설정 파일을 찾을 수 없습니다")
	})

	err := app.Run([]string{"hoplink-cli", "cache", "clear"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "설정 파일을 찾을 수 없습니다")
}

// =============================================================================
// parseOptions
// =============================================================================

func TestParseOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pairs   []string
		want    map[string]any
		wantErr bool
	}{
		{name: "빈 목록", pairs: nil, want: nil},
		{name: "정상", pairs: []string{"search_index=Beauty", " item_count = 5 "}, want: map[string]any{"search_index": "Beauty", "item_count": "5"}},
		{name: "빈 값 허용", pairs: []string{"search_index="}, want: map[string]any{"search_index": ""}},
		{name: "구분자 없음", pairs: []string{"search_index"}, wantErr: true},
		{name: "빈 키", pairs: []string{"=Beauty"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseOptions(tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
