package circuit

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrDecode 表示文档不是 Circuit JSON 数组。
var ErrDecode = errors.New("circuit: invalid circuit json")

// 解析到 Element 字段的键。
const (
	keyType                = "type"
	keyName                = "name"
	keyWidth               = "width"
	keyHeight              = "height"
	keyCenter              = "center"
	keyX                   = "x"
	keyY                   = "y"
	keySubcircuitID        = "subcircuit_id"
	keyParentSubcircuitID  = "parent_subcircuit_id"
	keySourceGroupID       = "source_group_id"
	keyParentSourceGroupID = "parent_source_group_id"
	keySourceComponentID   = "source_component_id"
	keyPcbGroupID          = "pcb_group_id"
	keyPcbComponentID      = "pcb_component_id"
	keyIsSubcircuit        = "is_subcircuit"
)

// Decode 读取 Circuit JSON 数组。
func Decode(r io.Reader) ([]Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read circuit json: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal 解析 Circuit JSON 数组。
func Unmarshal(data []byte) ([]Element, error) {
	var out []Element
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return out, nil
}

// Marshal 将元素写为带缩进的 Circuit JSON 数组。
func Marshal(elements []Element) ([]byte, error) {
	if elements == nil {
		elements = []Element{}
	}
	return json.MarshalIndent(elements, "", "  ")
}

// UnmarshalJSON 实现 json.Unmarshaler。非规范的坐标（字符串形式的 x/y、
// 缺少分量或带非数值分量的 center）在强制转换为数值的同时，原值保留在 Extra 中，
// 元素未移动时按原样写回。
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("%w: element is not an object", ErrDecode)
	}
	*e = Element{}
	e.Type, _ = raw[keyType].(string)
	delete(raw, keyType)

	if id, ok := raw[e.IDKey()].(string); ok {
		e.ID = id
		delete(raw, e.IDKey())
	}

	takeString := func(key string, dst *string) {
		if v, ok := raw[key].(string); ok {
			*dst = v
			delete(raw, key)
		}
	}
	takeString(keyName, &e.Name)
	takeString(keySubcircuitID, &e.SubcircuitID)
	takeString(keyParentSubcircuitID, &e.ParentSubcircuitID)
	takeString(keySourceGroupID, &e.SourceGroupID)
	takeString(keyParentSourceGroupID, &e.ParentSourceGroupID)
	takeString(keySourceComponentID, &e.SourceComponentID)
	takeString(keyPcbGroupID, &e.PcbGroupID)
	takeString(keyPcbComponentID, &e.PcbComponentID)

	if v, ok := raw[keyIsSubcircuit].(bool); ok {
		e.IsSubcircuit = v
		delete(raw, keyIsSubcircuit)
	}
	if v, ok := raw[keyWidth]; ok {
		e.Width = ParseDimension(v)
		delete(raw, keyWidth)
	}
	if v, ok := raw[keyHeight]; ok {
		e.Height = ParseDimension(v)
		delete(raw, keyHeight)
	}
	if c, ok := raw[keyCenter].(map[string]any); ok {
		p := pointOf(c)
		e.Center = &p
		if isPlainPoint(c) {
			delete(raw, keyCenter)
		}
	}
	takeCoord := func(key string) *float64 {
		v, ok := raw[key]
		if !ok || !isNumeric(v) {
			return nil
		}
		n := ToNumber(v)
		if _, plain := v.(float64); plain {
			delete(raw, key)
		}
		return &n
	}
	e.X = takeCoord(keyX)
	e.Y = takeCoord(keyY)
	if len(raw) > 0 {
		e.Extra = raw
	}
	return nil
}

// MarshalJSON 实现 json.Marshaler。
func (e Element) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Extra)+8)
	for k, v := range e.Extra {
		out[k] = v
	}
	out[keyType] = e.Type
	if e.ID != "" {
		out[e.IDKey()] = e.ID
	}
	putString := func(key, v string) {
		if v != "" && key != e.IDKey() {
			out[key] = v
		}
	}
	putString(keyName, e.Name)
	putString(keySubcircuitID, e.SubcircuitID)
	putString(keyParentSubcircuitID, e.ParentSubcircuitID)
	putString(keySourceGroupID, e.SourceGroupID)
	putString(keyParentSourceGroupID, e.ParentSourceGroupID)
	putString(keySourceComponentID, e.SourceComponentID)
	putString(keyPcbGroupID, e.PcbGroupID)
	putString(keyPcbComponentID, e.PcbComponentID)
	if e.IsSubcircuit {
		out[keyIsSubcircuit] = true
	}
	if e.Width.Present {
		out[keyWidth] = e.Width.jsonValue()
	}
	if e.Height.Present {
		out[keyHeight] = e.Height.jsonValue()
	}
	if e.Center != nil {
		if orig, ok := e.Extra[keyCenter].(map[string]any); !ok || pointOf(orig) != *e.Center {
			out[keyCenter] = *e.Center
		}
	}
	putCoord := func(key string, v *float64) {
		if v == nil {
			return
		}
		if orig, ok := e.Extra[key]; !ok || !isNumeric(orig) || ToNumber(orig) != *v {
			out[key] = *v
		}
	}
	putCoord(keyX, e.X)
	putCoord(keyY, e.Y)
	return json.Marshal(out)
}

// isNumeric 判断松散坐标能否强制转换为数值；其他形态（对象、数组）的 "x" 只留在 Extra。
func isNumeric(v any) bool {
	switch v.(type) {
	case float64, string:
		return true
	default:
		return false
	}
}

func pointOf(c map[string]any) Point {
	return Point{X: ToNumber(c["x"]), Y: ToNumber(c["y"])}
}

// isPlainPoint 判断 center 是否恰好为两个数值分量。
func isPlainPoint(c map[string]any) bool {
	if len(c) != 2 {
		return false
	}
	_, okX := c["x"].(float64)
	_, okY := c["y"].(float64)
	return okX && okY
}
