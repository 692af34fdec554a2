package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrich(t *testing.T) {
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })

	t.Run("주입된 값이 없으면 VCS 정보로 보강", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "f25b8bf"},
					{Key: "vcs.time", Value: "2026-10-01T00:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			}, true
		}

		bi := enrich(Info{})
		assert.Equal(t, "v1.2.0", bi.Version)
		assert.Equal(t, "f25b8bf", bi.Commit)
		assert.Equal(t, "2026-10-01T00:00:00Z", bi.BuildDate)
		assert.Equal(t, "0", bi.BuildNumber)
		assert.True(t, bi.DirtyBuild)
		assert.Equal(t, runtime.Version(), bi.GoVersion)
	})

	t.Run("주입된 값은 유지", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "other"}}}, true
		}

		bi := enrich(Info{Version: "v2.0.0", Commit: "abc1234", BuildNumber: "42"})
		assert.Equal(t, "v2.0.0", bi.Version)
		assert.Equal(t, "abc1234", bi.Commit)
		assert.Equal(t, "42", bi.BuildNumber)
	})

	t.Run("빌드 정보 없음", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

		bi := enrich(Info{})
		assert.Equal(t, unknown, bi.Version)
		assert.Equal(t, unknown, bi.Commit)
		assert.Equal(t, unknown, bi.BuildDate)
	})
}

func TestInfo_String(t *testing.T) {
	t.Parallel()

	s := Info{Version: "v1.0.0", Commit: "abc", BuildNumber: "7", BuildDate: "d", GoVersion: "go1.24", OS: "linux", Arch: "amd64", DirtyBuild: true}.String()
	assert.Equal(t, "v1.0.0 (commit: abc, build: #7, date: d, go1.24 linux/amd64) [dirty]", s)
}

func TestGet(t *testing.T) {
	bi := Get()
	assert.NotEmpty(t, bi.Version)
	assert.NotEmpty(t, bi.GoVersion)
}
