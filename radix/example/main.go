package main

import (
	"fmt"

	"github.com/Luukdegram/ctradix/radix"
)

func main() {
	tr := radix.New[byte, string]()
	tr.Insert([]byte("/"), "root")
	tr.Insert([]byte("/static/"), "static files")
	tr.Insert([]byte("/api/users"), "user list")
	tr.Insert([]byte("/api/users/"), "user by id")
	tr.Insert([]byte("/api/groups"), "group list")

	tr.DebugDump()

	println("------")

	for _, path := range []string{
		"/api/users",
		"/api/users/42",
		"/static/css/site.css",
		"/favicon.ico",
	} {
		if val, ok := tr.Get([]byte(path)); ok {
			fmt.Printf("exact   %-24s -> %v\n", path, val)
			continue
		}
		if val, ok := tr.GetLongestPrefix([]byte(path)); ok {
			fmt.Printf("longest %-24s -> %v\n", path, val)
		} else {
			fmt.Printf("miss    %-24s\n", path)
		}
	}
}
