// Package domain contains the core business entities, value objects, and
// domain logic of the todo system: active tasks, deleted tasks and the
// partial updates applied to them. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
