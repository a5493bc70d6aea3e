package node

import "strings"

// responseFormatMarkers 仅当上游错误点名结构化输出参数时才视为协议拒绝
var responseFormatMarkers = []string{
	"response_format",
	"json_schema",
	"response_schema",
}

// IsResponseFormatUnsupportedError 判断上游是否拒绝了 response_format。
// 鉴权失败、解析失败等其它错误一律返回 false，调用方不得重发。
func IsResponseFormatUnsupportedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range responseFormatMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
