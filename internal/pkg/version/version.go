// Package version 빌드 시점에 주입된 버전 정보와 실행 환경 정보를 제공합니다.
//
// 버전 정보는 링커 플래그(-ldflags "-X ...")로 주입되며, 주입되지 않은 개발
// 빌드(go run 등)에서는 debug.ReadBuildInfo의 VCS 메타데이터로 보강합니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const (
	unknown = "unknown"
	none    = "none"
)

var globalBuildInfo atomic.Value

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 둔다.
var readBuildInfo = debug.ReadBuildInfo

// 링커 플래그로 주입되는 값입니다. 직접 참조하지 말고 Get()을 사용해야 합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = ""
	buildDate     = ""
	buildNumber   = ""
)

func init() {
	bi := Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	}

	Set(bi)
}

// Info 애플리케이션의 빌드 정보입니다. /version API와 시작 로그에 사용됩니다.
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	DirtyBuild  bool   `json:"dirty_build"`
}

// String 사람이 읽기 쉬운 한 줄 형태로 빌드 정보를 반환합니다.
func (i Info) String() string {
	s := fmt.Sprintf("%s (commit: %s, build: #%s, date: %s, %s %s/%s)", i.Version, i.Commit, i.BuildNumber, i.BuildDate, i.GoVersion, i.OS, i.Arch)
	if i.DirtyBuild {
		s += " [dirty]"
	}
	return s
}

// Get 애플리케이션의 빌드 정보를 반환합니다.
func Get() Info {
	bi, ok := globalBuildInfo.Load().(Info)
	if !ok {
		return Info{Version: unknown, Commit: unknown, BuildDate: unknown, BuildNumber: "0"}
	}
	return bi
}

// Set 빌드 정보를 런타임 정보로 보강하여 전역으로 설정합니다.
// main 패키지에서 자체 ldflags 변수를 사용하는 경우 시작 시점에 호출합니다.
func Set(bi Info) {
	globalBuildInfo.Store(enrich(bi))
}

func enrich(bi Info) Info {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.OS == "" {
		bi.OS = runtime.GOOS
	}
	if bi.Arch == "" {
		bi.Arch = runtime.GOARCH
	}

	if val, ok := readBuildInfo(); ok {
		for _, setting := range val.Settings {
			switch setting.Key {
			case "vcs.revision":
				if bi.Commit == "" || bi.Commit == unknown || bi.Commit == none {
					bi.Commit = setting.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" || bi.BuildDate == unknown {
					bi.BuildDate = setting.Value
				}
			case "vcs.modified":
				if setting.Value == "true" {
					bi.DirtyBuild = true
				}
			}
		}
		if bi.Version == "" && val.Main.Version != "" && val.Main.Version != "(devel)" {
			bi.Version = val.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" || bi.Commit == none {
		bi.Commit = unknown
	}
	if bi.BuildDate == "" {
		bi.BuildDate = unknown
	}
	if bi.BuildNumber == "" {
		bi.BuildNumber = "0"
	}

	return bi
}
