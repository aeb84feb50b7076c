// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

package view_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/go-humble/view/v2"
	"github.com/go-humble/view/v2/dom"
	"github.com/go-humble/view/v2/dom/headless"
)

const listTemplate = `<ul class="list">` +
	`<li class="item" id="one"><span class="label">one</span></li>` +
	`<li class="item" id="two"><ul><li class="item" id="nested"><a class="link">x</a></li></ul></li>` +
	`</ul>`

// recorder collects delegated calls as "method:id-of-matched-element".
type recorder struct {
	calls []string
}

func (r *recorder) handler(name string) view.DelegateFunc {
	return func(ev dom.Event, matched dom.Element) {
		id := matched.GetAttribute("id")
		if id == "" {
			id = matched.TagName()
		}
		r.calls = append(r.calls, name+":"+id)
	}
}

func newListView(doc *headless.Document, rec *recorder, extra view.Methods) *view.View {
	methods := view.Methods{
		"onItem":  rec.handler("onItem"),
		"onLabel": rec.handler("onLabel"),
		"onLink":  rec.handler("onLink"),
		"onRoot":  rec.handler("onRoot"),
		"onList":  rec.handler("onList"),
	}
	for name, fn := range extra {
		methods[name] = fn
	}
	v, err := view.New(&view.Definition{Template: listTemplate},
		view.WithDocument(doc), view.WithMethods(methods))
	So(err, ShouldBeNil)
	return v
}

func TestParseEventKey(t *testing.T) {
	Convey("Event keys split into a type and a selector", t, func() {
		cases := []struct {
			key, typ, selector string
		}{
			{"click", "click", ""},
			{"click .save", "click", ".save"},
			{"  keyup   input[name=title] ", "keyup", "input[name=title]"},
			{"click ul > li.item", "click", "ul > li.item"},
			{"change\t.field", "change", ".field"},
		}
		for _, c := range cases {
			typ, selector, err := view.ParseEventKey(c.key)
			So(err, ShouldBeNil)
			So(typ, ShouldEqual, c.typ)
			So(selector, ShouldEqual, c.selector)
		}

		_, _, err := view.ParseEventKey("   ")
		So(err, ShouldEqual, view.ErrInvalidEventKey)
	})
}

func TestDelegate(t *testing.T) {
	Convey("Given a list view", t, func() {
		doc := headless.NewDocument()
		rec := &recorder{}
		v := newListView(doc, rec, nil)
		root := v.Element().(*headless.Element)
		label := root.QuerySelector(".label")

		Convey("A matching event under the root invokes the method once with the matched element", func() {
			So(v.Delegate("click", ".label", "onLabel"), ShouldBeNil)
			label.Dispatch("click")
			So(rec.calls, ShouldResemble, []string{"onLabel:span"})
		})

		Convey("The closest matching ancestor is passed to the handler", func() {
			So(v.Delegate("click", ".item", "onItem"), ShouldBeNil)
			root.QuerySelector(".link").Dispatch("click")
			So(rec.calls, ShouldResemble, []string{"onItem:nested"})
		})

		Convey("Handlers fire in ancestor order and then in registration order", func() {
			So(v.Delegate("click", "", "onRoot"), ShouldBeNil)
			So(v.Delegate("click", ".item", "onItem"), ShouldBeNil)
			So(v.Delegate("click", "a", "onLink"), ShouldBeNil)
			So(v.Delegate("click", ".link", "onLabel"), ShouldBeNil)
			root.QuerySelector(".link").Dispatch("click")
			So(rec.calls, ShouldResemble, []string{
				"onLink:a", "onLabel:a", "onItem:nested", "onRoot:div",
			})
		})

		Convey("An empty selector matches the root element only", func() {
			So(v.Delegate("click", "", "onRoot"), ShouldBeNil)
			label.Dispatch("click")
			root.Dispatch("click")
			So(rec.calls, ShouldResemble, []string{"onRoot:div", "onRoot:div"})
		})

		Convey("A non-empty selector can match the root element itself", func() {
			root.SetAttribute("class", "list-view")
			So(v.Delegate("click", ".list-view", "onList"), ShouldBeNil)
			label.Dispatch("click")
			So(rec.calls, ShouldResemble, []string{"onList:div"})
		})

		Convey("Only one native listener is attached per event type", func() {
			So(v.Delegate("click", ".item", "onItem"), ShouldBeNil)
			So(v.Delegate("click", ".label", "onLabel"), ShouldBeNil)
			So(v.Delegate("click", "", "onRoot"), ShouldBeNil)
			So(v.Delegate("keyup", ".item", "onItem"), ShouldBeNil)
			So(root.ListenerCount("click"), ShouldEqual, 1)
			So(root.ListenerCount("keyup"), ShouldEqual, 1)
			So(v.Delegated("click"), ShouldEqual, 3)
		})

		Convey("Binding an identical triple twice does not duplicate dispatch", func() {
			So(v.Delegate("click", ".label", "onLabel"), ShouldBeNil)
			So(v.Delegate("click", ".label", "onLabel"), ShouldBeNil)
			label.Dispatch("click")
			So(rec.calls, ShouldHaveLength, 1)
			So(v.Delegated("click"), ShouldEqual, 1)
		})

		Convey("Selectors are matched lazily at dispatch time", func() {
			So(v.Delegate("click", ".late", "onLabel"), ShouldBeNil)
			root.QuerySelector("#one").SetInnerHTML(`<em class="late">new</em>`)
			root.QuerySelector(".late").Dispatch("click")
			So(rec.calls, ShouldResemble, []string{"onLabel:em"})
		})

		Convey("Events of other types are ignored", func() {
			So(v.Delegate("click", ".label", "onLabel"), ShouldBeNil)
			label.Dispatch("keyup")
			So(rec.calls, ShouldBeEmpty)
		})

		Convey("Events outside the root are not delegated", func() {
			parent := doc.CreateElement("body")
			sibling := doc.CreateElement("span")
			sibling.SetAttribute("class", "label")
			parent.AppendChild(v.Element())
			parent.AppendChild(sibling)
			So(v.Delegate("click", ".label", "onLabel"), ShouldBeNil)
			sibling.Dispatch("click")
			So(rec.calls, ShouldBeEmpty)
		})

		Convey("Undelegate removes a method from every selector", func() {
			So(v.Delegate("click", ".label", "onItem"), ShouldBeNil)
			So(v.Delegate("click", ".link", "onItem"), ShouldBeNil)
			So(v.Delegate("click", ".item", "onLabel"), ShouldBeNil)
			v.Undelegate("click", "onItem")
			label.Dispatch("click")
			root.QuerySelector(".link").Dispatch("click")
			So(rec.calls, ShouldResemble, []string{"onLabel:one", "onLabel:nested"})
			So(root.ListenerCount("click"), ShouldEqual, 1)
		})

		Convey("Removing the last binding of a type detaches the native listener", func() {
			So(v.Delegate("click", ".label", "onLabel"), ShouldBeNil)
			So(v.Delegate("click", ".link", "onLabel"), ShouldBeNil)
			v.Undelegate("click", "onLabel")
			So(root.ListenerCount("click"), ShouldEqual, 0)
			label.Dispatch("click")
			So(rec.calls, ShouldBeEmpty)
		})

		Convey("UndelegateAll removes every binding of a type", func() {
			So(v.Delegate("click", ".label", "onLabel"), ShouldBeNil)
			So(v.Delegate("click", "", "onRoot"), ShouldBeNil)
			So(v.Delegate("keyup", "", "onRoot"), ShouldBeNil)
			v.UndelegateAll("click")
			So(root.ListenerCount("click"), ShouldEqual, 0)
			So(root.ListenerCount("keyup"), ShouldEqual, 1)
			label.Dispatch("click")
			label.Dispatch("keyup")
			So(rec.calls, ShouldResemble, []string{"onRoot:div"})
		})

		Convey("UndelegateSelector removes every method bound to a selector", func() {
			So(v.Delegate("click", ".label", "onLabel"), ShouldBeNil)
			So(v.Delegate("click", ".label", "onItem"), ShouldBeNil)
			So(v.Delegate("click", "", "onRoot"), ShouldBeNil)
			v.UndelegateSelector("click", ".label")
			label.Dispatch("click")
			So(rec.calls, ShouldResemble, []string{"onRoot:div"})
		})

		Convey("Removing bindings that do not exist is a no-op", func() {
			v.Undelegate("click", "onLabel")
			v.UndelegateAll("dblclick")
			v.UndelegateSelector("click", ".nothing")
			So(root.ListenerCount("click"), ShouldEqual, 0)
		})

		Convey("A handler that stops propagation keeps outer matches from firing", func() {
			stop := func(ev dom.Event) { ev.StopPropagation() }
			v2 := newListView(doc, rec, view.Methods{"stop": stop})
			So(v2.Delegate("click", ".label", "stop"), ShouldBeNil)
			So(v2.Delegate("click", ".item", "onItem"), ShouldBeNil)
			So(v2.Delegate("click", ".label", "onLabel"), ShouldBeNil)
			v2.Element().QuerySelector(".label").Dispatch("click")
			So(rec.calls, ShouldResemble, []string{"onLabel:span"})
		})

		Convey("A binding removed by an earlier handler is not invoked", func() {
			var target *view.View
			undelegate := func() { target.Undelegate("click", "onItem") }
			target = newListView(doc, rec, view.Methods{"undelegate": undelegate})
			So(target.Delegate("click", ".label", "undelegate"), ShouldBeNil)
			So(target.Delegate("click", ".item", "onItem"), ShouldBeNil)
			target.Element().QuerySelector(".label").Dispatch("click")
			So(rec.calls, ShouldBeEmpty)
			So(target.Delegated("click"), ShouldEqual, 1)
		})
	})
}

func TestDelegateErrors(t *testing.T) {
	Convey("Given a view owned by a struct", t, func() {
		doc := headless.NewDocument()
		f, err := newSaveForm(&view.Definition{Template: formTemplate}, view.WithDocument(doc))
		So(err, ShouldBeNil)

		Convey("Binding a missing method fails fast", func() {
			err := f.Delegate("click", ".save", "OnSav")
			So(errors.Is(err, view.ErrMissingMethod), ShouldBeTrue)
			So(f.Delegated("click"), ShouldEqual, 0)
			So(rootOf(f).ListenerCount("click"), ShouldEqual, 0)
		})

		Convey("Binding a method with the wrong signature fails", func() {
			err := f.Delegate("click", ".save", "NotAHandler")
			So(errors.Is(err, view.ErrMethodSignature), ShouldBeTrue)
		})

		Convey("Binding an invalid selector fails", func() {
			err := f.Delegate("click", "[[", "OnSave")
			So(errors.Is(err, view.ErrInvalidSelector), ShouldBeTrue)
		})

		Convey("Binding without an event type fails", func() {
			So(errors.Is(f.Delegate("", ".save", "OnSave"), view.ErrInvalidEventKey), ShouldBeTrue)
			So(errors.Is(f.DelegateAll(view.EventMap{{Key: " ", Method: "OnSave"}}), view.ErrInvalidEventKey), ShouldBeTrue)
		})

		Convey("DelegateAll binds nothing when one entry fails", func() {
			err := f.DelegateAll(view.EventMap{
				{Key: "click .save", Method: "OnSave"},
				{Key: "submit", Method: "Missing"},
			})
			So(errors.Is(err, view.ErrMissingMethod), ShouldBeTrue)
			So(f.Delegated("click"), ShouldEqual, 0)
			So(f.Delegated("submit"), ShouldEqual, 0)
		})
	})
}

func TestDelegateAll(t *testing.T) {
	Convey("Given click and submit bindings declared together", t, func() {
		doc := headless.NewDocument()
		f, err := newSaveForm(&view.Definition{
			Template: formTemplate,
			Events: view.EventMap{
				{Key: "click .save", Method: "OnSave"},
				{Key: "submit", Method: "OnSubmit"},
			},
		}, view.WithDocument(doc))
		So(err, ShouldBeNil)
		save := f.Element().QuerySelector(".save")

		Convey("A click on .save calls OnSave and not OnSubmit", func() {
			save.Dispatch("click")
			So(f.saves, ShouldHaveLength, 1)
			So(f.saves[0].IsSameNode(save), ShouldBeTrue)
			So(f.submits, ShouldEqual, 0)
		})

		Convey("A submit anywhere under the root calls OnSubmit", func() {
			f.Element().QuerySelector("form").Dispatch("submit")
			So(f.submits, ShouldEqual, 1)
			So(f.saves, ShouldBeEmpty)
		})

		Convey("Handlers without arguments are accepted from the method table", func() {
			clicks := 0
			v, err := view.New(&view.Definition{
				Template: formTemplate,
				Events:   view.EventMap{{Key: "click button", Method: "count"}},
			}, view.WithDocument(doc), view.WithMethods(view.Methods{
				"count": func() { clicks++ },
			}))
			So(err, ShouldBeNil)
			v.Element().QuerySelector("button").Dispatch("click")
			So(clicks, ShouldEqual, 1)
		})
	})
}
