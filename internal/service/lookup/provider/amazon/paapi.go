package amazon

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/darkkaiser/hoplink/internal/pkg/errors"
	"github.com/darkkaiser/hoplink/internal/service/lookup/fetcher"
	"github.com/darkkaiser/hoplink/internal/service/lookup/product"
	applog "github.com/darkkaiser/hoplink/pkg/log"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	serviceName  = "ProductAdvertisingAPI"
	targetPrefix = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1."

	operationSearchItems = "SearchItems"
	operationGetItems    = "GetItems"

	// PA-API가 결과 없음으로 응답할 때의 에러 코드
	errorCodeNoResults = "NoResults"

	// maxGetItemsIDs GetItems 1회 호출에 허용되는 최대 ASIN 수
	maxGetItemsIDs = 10
)

// resources 후보 레코드를 만드는 데 필요한 응답 항목
var resources = []string{
	"ItemInfo.Title",
	"ItemInfo.ByLineInfo",
	"ItemInfo.ExternalIds",
	"Offers.Listings.Price",
	"Images.Primary.Medium",
	"CustomerReviews.Count",
	"CustomerReviews.StarRating",
}

type searchItemsRequest struct {
	Keywords    string   `json:"Keywords"`
	SearchIndex string   `json:"SearchIndex"`
	ItemCount   int      `json:"ItemCount"`
	MinPrice    int      `json:"MinPrice,omitempty"`
	MaxPrice    int      `json:"MaxPrice,omitempty"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

type getItemsRequest struct {
	ItemIDs     []string `json:"ItemIds"`
	ItemIDType  string   `json:"ItemIdType"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

// SearchItems 키워드(또는 JAN 코드)로 상품을 검색합니다. 결과가 없으면 빈 슬라이스를 반환합니다.
func (c *Client) SearchItems(ctx context.Context, keywords string, opts SearchOptions) ([]*product.Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "검색 키워드가 비어 있습니다")
	}
	opts = opts.normalized()

	res, err := c.call(ctx, operationSearchItems, searchItemsRequest{
		Keywords:    keywords,
		SearchIndex: opts.SearchIndex,
		ItemCount:   opts.ItemCount,
		MinPrice:    opts.MinPrice,
		MaxPrice:    opts.MaxPrice,
		PartnerTag:  c.cfg.PartnerTag,
		PartnerType: "Associates",
		Marketplace: c.cfg.Marketplace,
		Resources:   resources,
	})
	if err != nil {
		return nil, err
	}

	return parseItems(res.Get("SearchResult.Items")), nil
}

// GetItems ASIN 목록으로 상품 정보를 다시 조회합니다. 10개를 넘으면 나누어 요청합니다.
func (c *Client) GetItems(ctx context.Context, asins []string) ([]*product.Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var records []*product.Record
	for start := 0; start < len(asins); start += maxGetItemsIDs {
		end := min(start+maxGetItemsIDs, len(asins))

		res, err := c.call(ctx, operationGetItems, getItemsRequest{
			ItemIDs:     asins[start:end],
			ItemIDType:  "ASIN",
			PartnerTag:  c.cfg.PartnerTag,
			PartnerType: "Associates",
			Marketplace: c.cfg.Marketplace,
			Resources:   resources,
		})
		if err != nil {
			return nil, err
		}

		records = append(records, parseItems(res.Get("ItemsResult.Items"))...)
	}

	return records, nil
}

// call 게이트를 통과한 뒤 서명된 요청을 보내고 응답 JSON을 반환합니다.
// 결과 없음(NoResults)은 에러가 아니라 빈 결과로 취급합니다.
func (c *Client) call(ctx context.Context, operation string, payload any) (gjson.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return gjson.Result{}, newErrBuildRequestFailed(err)
	}

	if err := c.gate.Wait(ctx); err != nil {
		return gjson.Result{}, apperrors.Wrap(err, apperrors.Timeout, "PA-API 호출 간격 대기 중 요청이 취소되었습니다")
	}

	// 검색/조회는 부작용이 없으므로 POST라도 재시도를 허용한다.
	req, err := http.NewRequestWithContext(fetcher.WithRetryable(ctx), http.MethodPost, c.endpoint.String()+"/paapi5/"+strings.ToLower(operation), bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, newErrBuildRequestFailed(err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Target", targetPrefix+operation)
	req.Header.Set("Accept", "application/json")

	if err := c.sign(ctx, req, body); err != nil {
		return gjson.Result{}, err
	}

	resp, err := c.fetcher.Do(req)
	if err != nil {
		if isNoResults(err) {
			return gjson.Result{}, nil
		}
		return gjson.Result{}, newErrAPIRequestFailed(operation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, newErrAPIRequestFailed(operation, err)
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, newErrInvalidResponse(operation)
	}

	res := gjson.ParseBytes(data)
	if code := res.Get("Errors.0.Code").String(); code != "" {
		if code == errorCodeNoResults {
			return gjson.Result{}, nil
		}
		// 일부 ASIN만 실패한 GetItems 응답은 성공한 항목을 그대로 사용한다.
		if !res.Get("ItemsResult").Exists() && !res.Get("SearchResult").Exists() {
			return gjson.Result{}, newErrAPIError(operation, code, res.Get("Errors.0.Message").String())
		}
	}

	return res, nil
}

func (c *Client) sign(ctx context.Context, req *http.Request, body []byte) error {
	cred, err := c.creds.Retrieve(ctx)
	if err != nil {
		return newErrSigningFailed(err)
	}

	sum := sha256.Sum256(body)
	if err := c.signer.SignHTTP(ctx, cred, req, hex.EncodeToString(sum[:]), serviceName, c.cfg.Region, c.now().UTC()); err != nil {
		return newErrSigningFailed(err)
	}

	return nil
}

// isNoResults PA-API는 검색 결과가 없으면 404와 NoResults 에러 코드로 응답한다.
func isNoResults(err error) bool {
	var statusErr *fetcher.HTTPStatusError
	if !apperrors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		return false
	}
	return gjson.Get(statusErr.BodySnippet, "Errors.0.Code").String() == errorCodeNoResults
}

// parseItems 응답 항목 배열을 후보 레코드로 변환합니다. ASIN이 없거나 검증에 실패한 항목은 건너뜁니다.
func parseItems(items gjson.Result) []*product.Record {
	var records []*product.Record

	items.ForEach(func(_, item gjson.Result) bool {
		if rec := parseItem(item); rec != nil {
			records = append(records, rec)
		}
		return true
	})

	return records
}

func parseItem(item gjson.Result) *product.Record {
	asin := item.Get("ASIN").String()

	opts := []product.Option{
		product.WithURL(item.Get("DetailPageURL").String()),
		product.WithAffiliateURL(item.Get("DetailPageURL").String()),
		product.WithBrand(firstNonEmpty(
			item.Get("ItemInfo.ByLineInfo.Brand.DisplayValue").String(),
			item.Get("ItemInfo.ByLineInfo.Manufacturer.DisplayValue").String(),
		)),
		product.WithImageURL(item.Get("Images.Primary.Medium.URL").String()),
		product.WithPrice(parsePrice(item.Get("Offers.Listings.0.Price.Amount"))),
		product.WithReviews(
			int(item.Get("CustomerReviews.Count").Int()),
			item.Get("CustomerReviews.StarRating.Value").Float(),
		),
	}

	// 일본 마켓플레이스의 EAN은 JAN 코드와 같다.
	for _, path := range []string{"ItemInfo.ExternalIds.EANs.DisplayValues", "ItemInfo.ExternalIds.UPCs.DisplayValues"} {
		found := false
		item.Get(path).ForEach(func(_, v gjson.Result) bool {
			if jan, ok := product.NormalizeJAN(v.String()); ok {
				opts = append(opts, product.WithJANCode(jan))
				found = true
				return false
			}
			return true
		})
		if found {
			break
		}
	}

	rec, err := product.New(product.PlatformAmazon, asin, item.Get("ItemInfo.Title.DisplayValue").String(), opts...)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"asin":  asin,
			"error": err,
		}).Warn("후보 무시됨: PA-API 응답 항목이 올바르지 않습니다")

		return nil
	}

	return rec
}

// parsePrice 응답의 금액(예: 3100, 3100.0)을 반올림한 엔화 정수로 변환합니다. 해석할 수 없으면 0입니다.
func parsePrice(amount gjson.Result) int {
	if !amount.Exists() {
		return 0
	}

	d, err := decimal.NewFromString(strings.TrimSpace(amount.String()))
	if err != nil || d.IsNegative() {
		return 0
	}

	return int(d.Round(0).IntPart())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
