package broken

//noodle:sql dialect=oracle rawid=int64
type A struct{ Name string }

//noodle:sql dialect=sqlite
type B struct{ Name string }

//noodle:sql dialect=sqlite rawid=int64
type C struct {
	_  int
	Id int64
	Ch chan int
}

//noodle:sql dialect=sqlite rawid=int64
type D[T any] struct{ V T }

//noodle:sql dialect=sqlite rawid=int64 color=red
//noodle:rawid K
type E[R comparable] struct{ V R }

//noodle:sql dialect=sqlite rawid=int64 name=Shared
type F struct{ A int }

//noodle:sql dialect=sqlite rawid=int64 name=Shared
type G struct{ A int }

//noodle:sql dialect=sqlite rawid=string
//noodle:rawid R
type H[R ~int64] struct{ V R }

//noodle:sql dialect=sqlite rawid=int64
type I int

//noodle:sql dialect=sqlite rawid=int64
//noodle:sql dialect=mysql rawid=int64
type Order struct {
	Group string
	Key   string
	Note  string
}
