// Package product 플랫폼(Rakuten, Amazon)에 독립적인 상품 레코드를 정의합니다.
//
// Record는 조회 시점마다 새로 생성되며 생성 이후에는 변경하지 않습니다.
// 가격, JAN 코드, 브랜드, 리뷰 정보는 모두 선택 항목이며 값이 없으면
// 매칭 점수 계산에 참여하지 않습니다.
package product

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// Platform 상품이 속한 쇼핑 플랫폼입니다.
type Platform string

const (
	PlatformRakuten Platform = "rakuten"
	PlatformAmazon  Platform = "amazon"
)

// Record 플랫폼 공통 상품 레코드입니다.
type Record struct {
	Platform Platform `json:"platform" validate:"required,oneof=rakuten amazon"`

	// ID Rakuten은 itemCode(shop:item), Amazon은 ASIN
	ID string `json:"id" validate:"required"`

	Name  string `json:"name"`
	Price int    `json:"price,omitempty" validate:"gte=0"` // 엔화 정수, 0이면 가격 정보 없음

	JANCode string `json:"jan_code,omitempty" validate:"omitempty,jan"`
	Brand   string `json:"brand,omitempty"`

	URL          string `json:"url,omitempty"`
	AffiliateURL string `json:"affiliate_url,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	ShopName     string `json:"shop_name,omitempty"`

	ReviewCount   int     `json:"review_count,omitempty" validate:"gte=0"`
	ReviewAverage float64 `json:"review_average,omitempty" validate:"gte=0,lte=5"`
}

// HasPrice 가격 정보가 있는지 여부를 반환합니다.
func (r *Record) HasPrice() bool {
	return r.Price > 0
}

// HasJAN JAN 코드가 있는지 여부를 반환합니다.
func (r *Record) HasJAN() bool {
	return r.JANCode != ""
}

func (r *Record) String() string {
	return fmt.Sprintf("%s:%s(%s)", r.Platform, r.ID, r.Name)
}

// Validate 레코드의 불변 조건(가격 >= 0, JAN 코드 형식 등)을 검증합니다.
func (r *Record) Validate() error {
	if err := getValidator().Struct(r); err != nil {
		var validationErrors validator.ValidationErrors
		if apperrors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldErr := validationErrors[0]
			return apperrors.Newf(apperrors.InvalidInput, "상품 레코드가 올바르지 않습니다: %s (조건: %s, 값: '%v')", fieldErr.Field(), fieldErr.Tag(), fieldErr.Value())
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "상품 레코드 검증에 실패했습니다")
	}
	return nil
}

// Option New로 레코드를 생성할 때 선택 항목을 설정합니다.
type Option func(*Record)

func WithPrice(price int) Option         { return func(r *Record) { r.Price = price } }
func WithBrand(brand string) Option      { return func(r *Record) { r.Brand = strings.TrimSpace(brand) } }
func WithURL(url string) Option          { return func(r *Record) { r.URL = url } }
func WithAffiliateURL(url string) Option { return func(r *Record) { r.AffiliateURL = url } }
func WithImageURL(url string) Option     { return func(r *Record) { r.ImageURL = url } }
func WithShopName(name string) Option    { return func(r *Record) { r.ShopName = name } }

// WithJANCode JAN 코드를 정규화하여 설정합니다. 정규화에 실패하면 무시합니다.
func WithJANCode(code string) Option {
	return func(r *Record) {
		if jan, ok := NormalizeJAN(code); ok {
			r.JANCode = jan
		}
	}
}

// WithReviews 리뷰 수와 평균 평점을 설정합니다.
func WithReviews(count int, average float64) Option {
	return func(r *Record) {
		r.ReviewCount = count
		r.ReviewAverage = average
	}
}

// New 레코드를 생성하고 불변 조건을 검증합니다.
func New(platform Platform, id, name string, opts ...Option) (*Record, error) {
	r := &Record{
		Platform: platform,
		ID:       strings.TrimSpace(id),
		Name:     strings.TrimSpace(name),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err := validate.RegisterValidation("jan", func(fl validator.FieldLevel) bool {
			return IsValidJAN(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: 'jan' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
		}
	})

	return validate
}
