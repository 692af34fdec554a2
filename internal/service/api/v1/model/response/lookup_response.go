// Package response v1 API의 응답 본문 모델을 정의합니다.
package response

import "github.com/darkkaiser/hoplink/internal/service/lookup"

// LookupResponse 단건 조회 응답
type LookupResponse struct {
	// 결과 코드 (0: 성공)
	ResultCode int `json:"result_code" example:"0"`
	// 조회 결과
	Result *lookup.Result `json:"result"`
}

// BatchLookupResponse 일괄 조회 응답. 항목 순서는 요청 순서와 같습니다.
type BatchLookupResponse struct {
	ResultCode int                `json:"result_code" example:"0"`
	Items      []lookup.BatchItem `json:"items"`
}

// BatchMatchResponse 일괄 매칭 응답. 항목 순서는 요청의 원본 순서와 같습니다.
type BatchMatchResponse struct {
	ResultCode int                   `json:"result_code" example:"0"`
	Items      []lookup.MatchOutcome `json:"items"`
}
