// Package creator builds objects from declarative descriptions.
//
// A description is one of:
//
//   - Identifier: a class identifier, e.g. Identifier(`shop\Car`).
//   - Descriptor: a property bag with a "class" entry, e.g.
//     Descriptor{"class": `shop\Car`, "color": "blue"}.
//   - Factory: a function returning the instance directly.
//
// Classes are looked up through a ClassLoader, normally a Registry, where
// each class declares its constructor, an optional singleton accessor, its
// parent and the mixins it uses. A Defaults table holds per-class initial
// property values that are merged under the properties of every description
// for that class.
//
// Example:
//
//	reg := creator.NewRegistry()
//	reg.MustRegister(creator.Class{
//	    Name: `shop\Car`,
//	    New:  creator.NewConfigurable(func() *Car { return &Car{} }),
//	})
//	c := creator.New(reg)
//	c.Defaults().Set(`shop\Car`, creator.Properties{"color": "red"})
//	car, err := creator.Build[*Car](c, creator.Descriptor{"class": `\shop\Car`, "doors": 3})
//
// A Creator is safe for concurrent use when its ClassLoader is.
package creator
