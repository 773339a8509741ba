// SPDX-License-Identifier: MIT

package standardize

// Rewrite tables. Order matters wherever a key is a substring of another
// key: longer phrases come first.

// Fillers are request verbs and question particles removed from anywhere
// in the text.
// Every parser marker except the bare verbs in LeadingVerbs is listed here.
var Fillers = []string{
	"你好", "您好", "麻烦", "请问", "请",
	"能不能", "可不可以", "可以",
	"带我去", "带我到", "带我", "领我去", "领我到", "领我",
	"我要去", "我想去", "我要到", "我想到", "我要找", "我想找",
	"怎么去", "怎么走", "怎么到", "如何去", "如何到",
	"导航到", "导航去", "导航",
	"前往", "走到",
	"在什么地方", "在哪里", "在哪儿", "在哪",
	"哪里有", "哪儿有",
	"帮我找", "找一下",
	"的位置", "位置",
	"吗", "呢",
	"？", "?", "。", "！", "!", "，", ",", "、",
}

// LeadingVerbs are single-character verbs stripped only at the start of the
// text, so that names containing them ("报到处") survive.
var LeadingVerbs = []string{"去", "到", "往", "找"}

// Particles are pronouns, modal verbs, bare verbs and sentence-final
// particles trimmed from both ends of a place name that is not a known
// facility. Interior characters survive ("报到处").
const Particles = "我你您的能要想去到往找吧啊呀哦嘛了"

// Synonyms maps colloquial or misspelled facility names to canonical ones.
// No replacement contains any key, so one pass is enough.
var Synonyms = []struct{ From, To string }{
	{"卫生间", "洗手间"},
	{"厕所", "洗手间"},
	{"WC", "洗手间"},
	{"wc", "洗手间"},
	{"试验室", "实验室"},
	{"电梯间", "电梯"},
	{"楼梯口", "楼梯"},
	{"楼梯间", "楼梯"},
	{"大堂", "大厅"},
	{"大门", "入口"},
}

// Facilities are canonical facility words. A fragment naming one of them is
// a location even without a floor or room number.
var Facilities = []string{
	"教室", "实验室", "洗手间", "大厅", "入口", "出口",
	"电梯", "楼梯", "办公室", "会议室", "图书馆", "阅览室",
	"食堂", "机房", "报告厅", "礼堂", "体育馆", "医务室",
}

// ClassroomSuffix is appended to a bare room number.
const ClassroomSuffix = "教室"

// FloorUnit is the canonical floor suffix.
const FloorUnit = "楼"

// numeralDigits maps single-digit numerals to their value.
var numeralDigits = map[rune]int{
	'零': 0, '〇': 0, '一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
	'０': 0, '１': 1, '２': 2, '３': 3, '４': 4,
	'５': 5, '６': 6, '７': 7, '８': 8, '９': 9,
}

// numeralUnits maps positional numerals to their multiplier.
var numeralUnits = map[rune]int{'十': 10, '百': 100}
