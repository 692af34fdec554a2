package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/darkkaiser/hoplink/internal/config"
	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/pkg/version"
	"github.com/darkkaiser/hoplink/internal/service/lookup"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	"github.com/urfave/cli/v2"
)

// lookupRunner CLI 명령이 사용하는 조회 서비스 기능입니다.
type lookupRunner interface {
	Lookup(ctx context.Context, req lookup.Request) (*lookup.Result, error)
	BatchMatch(ctx context.Context, sources []*product.Record, mode string) ([]lookup.MatchOutcome, error)
	PurgeCache(ctx context.Context) error
	PurgeExpired(ctx context.Context) (int, error)
}

// serviceOpener 설정 파일 경로로 조회 서비스를 준비합니다.
type serviceOpener func(ctx context.Context, configFile string, debug bool) (lookupRunner, func(), error)

const (
	flagConfig = "config"
	flagDebug  = "debug"
	flagKind   = "kind"
	flagMode   = "mode"
	flagOption = "option"
	flagFile   = "file"
	flagPretty = "pretty"
)

// newApp CLI 애플리케이션을 구성합니다. 결과(JSON)는 out으로 출력합니다.
func newApp(out io.Writer, open serviceOpener) *cli.App {
	return &cli.App{
		Name:    config.AppName + "-cli",
		Usage:   "Rakuten 상품과 Amazon 상품 매칭 도구",
		Version: buildInfo().String(),
		Writer:  out,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Value:   config.DefaultFilename,
				Usage:   "설정 파일 경로",
				EnvVars: []string{config.EnvPrefix + "CONFIG"},
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "디버그 로그 출력",
			},
			&cli.BoolFlag{
				Name:  flagPretty,
				Value: true,
				Usage: "들여쓰기된 JSON 출력",
			},
		},

		Commands: []*cli.Command{
			lookupCommand(out, open),
			matchCommand(out, open),
			cacheCommand(out, open),
			versionCommand(out),
		},
	}
}

func lookupCommand(out io.Writer, open serviceOpener) *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Rakuten 상품 URL, JAN 코드 또는 키워드로 조회하고 Amazon 상품과 매칭합니다",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagKind,
				Aliases: []string{"k"},
				Usage:   "조회 종류 (url, jan, keyword). 비어 있으면 입력 형태로 판단",
			},
			&cli.StringFlag{
				Name:    flagMode,
				Aliases: []string{"m"},
				Usage:   "매칭 모드 (strict, normal, loose)",
			},
			&cli.StringSliceFlag{
				Name:    flagOption,
				Aliases: []string{"o"},
				Usage:   "Amazon 검색 조건 (key=value, 반복 가능)",
			},
		},
		Action: func(c *cli.Context) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return apperrors.New(apperrors.InvalidInput, "검색어가 필요합니다")
			}

			options, err := parseOptions(c.StringSlice(flagOption))
			if err != nil {
				return err
			}

			return withService(c, open, func(ctx context.Context, svc lookupRunner) error {
				res, err := svc.Lookup(ctx, lookup.Request{
					Query:   query,
					Kind:    lookup.InputKind(c.String(flagKind)),
					Mode:    c.String(flagMode),
					Options: options,
				})
				if err != nil {
					return err
				}

				return writeJSON(out, res, c.Bool(flagPretty))
			})
		},
	}
}

func matchCommand(out io.Writer, open serviceOpener) *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "JSON 파일의 원본 상품 목록을 Amazon 후보와 일괄 매칭합니다",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagFile,
				Aliases:  []string{"f"},
				Usage:    "원본 상품 목록 JSON 파일 경로 (- 이면 표준 입력)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    flagMode,
				Aliases: []string{"m"},
				Usage:   "매칭 모드 (strict, normal, loose)",
			},
		},
		Action: func(c *cli.Context) error {
			sources, err := readSources(c.App.Reader, c.String(flagFile))
			if err != nil {
				return err
			}

			return withService(c, open, func(ctx context.Context, svc lookupRunner) error {
				outcomes, err := svc.BatchMatch(ctx, sources, c.String(flagMode))
				if err != nil {
					return err
				}

				return writeJSON(out, outcomes, c.Bool(flagPretty))
			})
		},
	}
}

func cacheCommand(out io.Writer, open serviceOpener) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "조회 결과 캐시를 관리합니다",
		Subcommands: []*cli.Command{
			{
				Name:  "clear",
				Usage: "캐시를 모두 비웁니다",
				Action: func(c *cli.Context) error {
					return withService(c, open, func(ctx context.Context, svc lookupRunner) error {
						if err := svc.PurgeCache(ctx); err != nil {
							return err
						}

						fmt.Fprintln(out, "캐시를 모두 비웠습니다")
						return nil
					})
				},
			},
			{
				Name:  "purge-expired",
				Usage: "만료된 캐시 항목만 삭제합니다",
				Action: func(c *cli.Context) error {
					return withService(c, open, func(ctx context.Context, svc lookupRunner) error {
						n, err := svc.PurgeExpired(ctx)
						if err != nil {
							return err
						}

						fmt.Fprintf(out, "만료된 캐시 항목 %d개를 삭제했습니다\n", n)
						return nil
					})
				},
			},
		},
	}
}

func versionCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "빌드 정보를 출력합니다",
		Action: func(c *cli.Context) error {
			return writeJSON(out, buildInfo(), c.Bool(flagPretty))
		},
	}
}

// withService 조회 서비스를 열고 fn을 실행한 뒤 닫습니다.
func withService(c *cli.Context, open serviceOpener, fn func(ctx context.Context, svc lookupRunner) error) error {
	ctx := c.Context

	svc, closeFn, err := open(ctx, c.String(flagConfig), c.Bool(flagDebug))
	if err != nil {
		return err
	}
	defer closeFn()

	return fn(ctx, svc)
}

// parseOptions key=value 목록을 검색 조건 맵으로 변환합니다. 값의 타입 변환은 조회 서비스가 담당합니다.
func parseOptions(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	options := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, apperrors.Newf(apperrors.InvalidInput, "검색 조건은 key=value 형식이어야 합니다: '%s'", pair)
		}
		options[key] = strings.TrimSpace(value)
	}

	return options, nil
}

// readSources 파일(또는 표준 입력)에서 원본 상품 목록을 읽고 각 항목을 검증합니다.
func readSources(stdin io.Reader, path string) ([]*product.Record, error) {
	var r io.Reader
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "원본 상품 파일을 열 수 없습니다: '%s'", path)
		}
		defer f.Close()
		r = f
	}

	var sources []*product.Record
	if err := json.NewDecoder(r).Decode(&sources); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "원본 상품 목록 JSON을 해석할 수 없습니다")
	}
	if len(sources) == 0 {
		return nil, apperrors.New(apperrors.InvalidInput, "원본 상품 목록이 비어 있습니다")
	}

	for i, src := range sources {
		if src == nil {
			return nil, apperrors.Newf(apperrors.InvalidInput, "sources[%d]: 원본 상품이 비어 있습니다", i)
		}
		if err := src.Validate(); err != nil {
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "sources[%d]", i)
		}
	}

	return sources, nil
}

func writeJSON(out io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func buildInfo() version.Info {
	return version.Info{
		Version:     Version,
		Commit:      Commit,
		BuildDate:   BuildDate,
		BuildNumber: BuildNumber,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
}
