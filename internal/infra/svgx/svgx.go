// Package svgx 把 SVG 文本解析为最小的元素树（根节点 + 属性 + 元素子节点）。
//
// SVG 是 XML：解析走严格模式的 encoding/xml，元素名与属性名保持原样大小写，
// 截断或不闭合的文档直接报错。文本、注释与处理指令被丢弃。
package svgx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// ErrNoRoot 表示文档的根元素不是 <svg>。
var ErrNoRoot = errors.New("svg: 根元素不是 <svg>")

// Node 是一个 SVG 元素。
type Node struct {
	Name     string
	Attrs    map[string]string
	Children []Node
}

// Attr 返回属性值；不存在时 ok=false。
func (n Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// Parse 解析 SVG 文本，返回根 <svg> 元素。
// 根元素之后只允许出现空白、注释与处理指令。
func Parse(b []byte) (Node, error) {
	d := xml.NewDecoder(bytes.NewReader(b))

	var (
		root  Node
		found bool
	)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			if !found {
				return Node{}, ErrNoRoot
			}
			return root, nil
		}
		if err != nil {
			return Node{}, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if found {
			return Node{}, fmt.Errorf("svg: 根元素之后出现多余元素 <%s>", start.Name.Local)
		}
		if start.Name.Local != "svg" {
			return Node{}, ErrNoRoot
		}
		if root, err = build(d, start); err != nil {
			return Node{}, err
		}
		found = true
	}
}

// build 从 start 开始读到与之匹配的结束标签为止。
func build(d *xml.Decoder, start xml.StartElement) (Node, error) {
	n := Node{
		Name:  start.Name.Local,
		Attrs: make(map[string]string, len(start.Attr)),
	}
	for _, a := range start.Attr {
		key := a.Name.Local
		if a.Name.Space != "" {
			key = a.Name.Space + ":" + a.Name.Local
		}
		n.Attrs[key] = a.Value
	}

	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Node{}, io.ErrUnexpectedEOF
			}
			return Node{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			c, err := build(d, t)
			if err != nil {
				return Node{}, err
			}
			n.Children = append(n.Children, c)
		case xml.EndElement:
			return n, nil
		}
	}
}
