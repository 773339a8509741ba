// SPDX-License-Identifier: MIT

package parser

// NavigateMarkers are phrases that ask to be taken somewhere.
var NavigateMarkers = []string{
	"怎么去", "怎么走", "怎么到", "如何去", "如何到",
	"带我", "领我", "导航", "前往", "我要去", "我想去",
	"去", "到",
}

// SearchMarkers are phrases that ask where something is. They are checked
// before NavigateMarkers, so "去洗手间在哪里" is a search.
var SearchMarkers = []string{
	"在什么地方", "在哪里", "在哪儿", "在哪",
	"哪里有", "哪儿有", "位置", "找",
}
