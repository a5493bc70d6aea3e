package node

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject 从模型输出中取出第一个 JSON 对象或数组。
// 模型常在 JSON 外包一层 markdown 围栏或说明文字；找不到合法值时返回去空白后的原文，
// 由解码阶段报告格式错误。
func ExtractJSONObject(s string) string {
	text := strings.TrimSpace(s)
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}

	dec := json.NewDecoder(strings.NewReader(text[start:]))
	var value json.RawMessage
	if err := dec.Decode(&value); err == nil {
		return string(value)
	}

	closer := "}"
	if text[start] == '[' {
		closer = "]"
	}
	if end := strings.LastIndex(text, closer); end > start {
		return text[start : end+1]
	}
	return text
}
