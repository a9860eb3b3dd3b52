// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

// T20006Namespace is the namespace of the template instantiation scenario.
const T20006Namespace = "clanguml::t20006"

// T20006Start is the start-from signature of the scenario driver.
const T20006Start = T20006Namespace + "::tmain()"

// Edge is an expected caller → callee message, with namespace-relative
// display names.
type Edge struct {
	From  string
	To    string
	Label string
}

// T20006Participants lists the participants of the finalized scenario in
// first-appearance order.
var T20006Participants = []string{
	"tmain()",
	"B<int>",
	"A<int>",
	"B<std::string>",
	"A<std::string>",
	"BB<int,int>",
	"AA<int>",
	"BB<int,std::string>",
	"BB<int,float>",
}

// T20006Edges lists the messages of the finalized scenario in order.
var T20006Edges = []Edge{
	{"tmain()", "B<int>", "b"},
	{"B<int>", "A<int>", "a1"},
	{"tmain()", "B<std::string>", "b"},
	{"B<std::string>", "A<std::string>", "a2"},
	{"tmain()", "BB<int,int>", "bb1"},
	{"BB<int,int>", "AA<int>", "aa1"},
	{"tmain()", "BB<int,int>", "bb2"},
	{"BB<int,int>", "AA<int>", "aa2"},
	{"tmain()", "BB<int,std::string>", "bb1"},
	{"BB<int,std::string>", "AA<int>", "aa2"},
	{"tmain()", "BB<int,std::string>", "bb2"},
	{"BB<int,std::string>", "AA<int>", "aa1"},
	{"tmain()", "BB<int,float>", "bb1"},
	{"BB<int,float>", "BB<int,float>", "bb2"},
	{"BB<int,float>", "AA<int>", "aa2"},
}

// T20006 builds the resolved tree of a translation unit instantiating the
// class templates A<T>, B<T>, AA<T> and BB<T,U> from a tmain() driver:
//
//	template <typename T> struct A { T a1(T); T a2(T); };
//	template <typename T> struct B { T b(T arg) { return a_.a1(arg); } A<T> a_; };
//	template <> struct B<std::string> { std::string b(std::string arg) { return a_.a2(arg); } ... };
//	template <typename T> struct AA { void aa1(T); void aa2(T); };
//	template <typename T, typename F> struct BB { void bb1(T, F) { aa_.aa1(t); } void bb2(T, F) { aa_.aa2(t); } ... };
//	template <typename T> struct BB<T, std::string> { bb1 -> aa2, bb2 -> aa1 };
//	template <typename T> struct BB<T, float> { bb1 -> bb2, bb2 -> aa2 };
//	void tmain();
//
// Nodes appear in the order a front-end reports them: every template
// pattern (dependent, never recorded) followed by its instantiations, and
// tmain() last.
func T20006() *sourcemodel.TranslationUnit {
	ns := T20006Namespace
	t := sourcemodel.T
	intT, strT, floatT := t("int"), t("std::string"), t("float")

	// Patterns.
	aT := Rec(ns+"::A", t("T"))
	bT := Rec(ns+"::B", t("T"))
	aaT := Rec(ns+"::AA", t("T"))
	bbTF := Rec(ns+"::BB", t("T"), t("F"))
	bbTstr := Rec(ns+"::BB", t("T"), strT)
	bbTfloat := Rec(ns+"::BB", t("T"), floatT)

	// Instantiations.
	aInt := Rec(ns+"::A", intT)
	aStr := Rec(ns+"::A", strT)
	bInt := Rec(ns+"::B", intT)
	bStr := Rec(ns+"::B", strT)
	aaInt := Rec(ns+"::AA", intT)
	bbIntInt := Rec(ns+"::BB", intT, intT)
	bbIntStr := Rec(ns+"::BB", intT, strT)
	bbIntFloat := Rec(ns+"::BB", intT, floatT)

	a1Int := MethodDecl(aInt, "a1", intT)
	a2Str := MethodDecl(aStr, "a2", strT)
	bIntB := MethodDecl(bInt, "b", intT)
	bStrB := MethodDecl(bStr, "b", strT)
	aa1Int := MethodDecl(aaInt, "aa1", intT)
	aa2Int := MethodDecl(aaInt, "aa2", intT)
	bb1IntInt := MethodDecl(bbIntInt, "bb1", intT, intT)
	bb2IntInt := MethodDecl(bbIntInt, "bb2", intT, intT)
	bb1IntStr := MethodDecl(bbIntStr, "bb1", intT, strT)
	bb2IntStr := MethodDecl(bbIntStr, "bb2", intT, strT)
	bb1IntFloat := MethodDecl(bbIntFloat, "bb1", intT, floatT)
	bb2IntFloat := MethodDecl(bbIntFloat, "bb2", intT, floatT)

	tmain := FunctionDecl(ns + "::tmain")

	return Unit("t20006.cc",
		&sourcemodel.Node{Kind: sourcemodel.KindNamespace, Children: []*sourcemodel.Node{
			pattern(aT,
				dependentBody(aT, "a1", nil),
				dependentBody(aT, "a2", nil),
			),
			Class(aInt, Body(a1Int)),
			Class(aStr, Body(a2Str)),

			pattern(bT,
				dependentBody(bT, "b", dependentMethod(aT, "a1")),
			),
			Class(bInt, Body(bIntB, Block(Call(a1Int)))),
			Class(bStr, Body(bStrB, Block(Call(a2Str)))),

			pattern(aaT,
				dependentBody(aaT, "aa1", nil),
				dependentBody(aaT, "aa2", nil),
			),
			Class(aaInt, Body(aa1Int), Body(aa2Int)),

			pattern(bbTF,
				dependentBody(bbTF, "bb1", dependentMethod(aaT, "aa1")),
				dependentBody(bbTF, "bb2", dependentMethod(aaT, "aa2")),
			),
			Class(bbIntInt,
				Body(bb1IntInt, Block(Call(aa1Int))),
				Body(bb2IntInt, Block(Call(aa2Int))),
			),

			pattern(bbTstr,
				dependentBody(bbTstr, "bb1", dependentMethod(aaT, "aa2")),
				dependentBody(bbTstr, "bb2", dependentMethod(aaT, "aa1")),
			),
			Class(bbIntStr,
				Body(bb1IntStr, Block(Call(aa2Int))),
				Body(bb2IntStr, Block(Call(aa1Int))),
			),

			pattern(bbTfloat,
				dependentBody(bbTfloat, "bb1", dependentMethod(bbTfloat, "bb2")),
				dependentBody(bbTfloat, "bb2", dependentMethod(aaT, "aa2")),
			),
			Class(bbIntFloat,
				Body(bb1IntFloat, Block(Call(bb2IntFloat))),
				Body(bb2IntFloat, Block(Call(aa2Int))),
			),

			Body(tmain, Block(
				Call(bIntB),
				Call(bStrB),
				Call(bb1IntInt),
				Call(bb2IntInt),
				Call(bb1IntStr),
				Call(bb2IntStr),
				Call(bb1IntFloat),
			)),
		}},
	)
}

// pattern builds an uninstantiated class template definition.
func pattern(rec *sourcemodel.Record, members ...*sourcemodel.Node) *sourcemodel.Node {
	n := Class(rec, members...)
	n.Decl.Dependent = true
	return n
}

func dependentMethod(rec *sourcemodel.Record, name string) *sourcemodel.Decl {
	d := MethodDecl(rec, name, sourcemodel.T("T"))
	d.Dependent = true
	return d
}

func dependentBody(rec *sourcemodel.Record, name string, callee *sourcemodel.Decl) *sourcemodel.Node {
	var body []*sourcemodel.Node
	if callee != nil {
		body = append(body, Call(callee))
	}
	return Body(dependentMethod(rec, name), Block(body...))
}
