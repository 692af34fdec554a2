package matcher

import (
	"regexp"
	"strings"

	"github.com/darkkaiser/hoplink/pkg/strutil"
	"golang.org/x/text/width"
)

// noiseWords 상품명에 붙는 판촉 문구입니다. 정규화 시 공백으로 치환합니다.
var noiseWords = []string{
	"送料無料",
	"ポイント",
	"倍",
	"セール",
	"在庫あり",
	"即納",
	"新品",
	"正規品",
	"国内正規",
	"並行輸入",
	"限定",
	"特価",
}

// bracketRegexp 괄호로 둘러싸인 부가 정보(【送料無料】, (税込) 등)를 찾습니다.
// 전각 괄호는 width.Fold 이후 반각으로 바뀌므로 반각 형태만 다룹니다.
var bracketRegexp = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|【[^】]*】|〔[^〕]*〕|《[^》]*》|〈[^〉]*〉`)

// NormalizeName 상품명을 비교 가능한 형태로 정규화합니다.
//
// 전각/반각 통일, 소문자 변환, 괄호 내용 제거, 판촉 문구 제거, 공백 축약 순서로 처리합니다.
func NormalizeName(name string) string {
	s := foldText(name)
	for _, w := range noiseWords {
		s = strings.ReplaceAll(s, w, " ")
	}
	return strutil.NormalizeSpaces(s)
}

// NormalizeBrand 브랜드명을 정규화합니다. 판촉 문구는 제거하지 않습니다.
func NormalizeBrand(brand string) string {
	return strutil.NormalizeSpaces(foldText(brand))
}

func foldText(s string) string {
	s = width.Fold.String(s)
	s = strings.ToLower(s)
	return bracketRegexp.ReplaceAllString(s, " ")
}

// maxKeywordRunes 키워드 검색에 사용하는 상품명의 최대 길이입니다.
const maxKeywordRunes = 60

// maxKeywordTerms 키워드 검색에 사용하는 최대 단어 수입니다.
const maxKeywordTerms = 6

// CleanKeyword 상품명을 외부 검색 엔진의 키워드로 쓸 수 있도록 정리합니다.
// 정규화된 이름의 앞부분 단어만 사용합니다.
func CleanKeyword(name string) string {
	terms := strings.Fields(NormalizeName(name))
	if len(terms) > maxKeywordTerms {
		terms = terms[:maxKeywordTerms]
	}
	return strings.TrimSpace(strutil.TruncateRunes(strings.Join(terms, " "), maxKeywordRunes))
}
