// Package ecs bridges stage interaction events into a [Donburi] world.
//
// [NewDonburiStore] publishes every pointer, click and drag event on a node
// with a non-zero EntityID as an [InteractionEventType] event. [Router] builds
// on it: screens tag nodes (bunnies, map markers) with a kind and key, and
// register handlers per kind that run when the world's events are processed
// once per frame.
//
//	world := donburi.NewWorld()
//	router := ecs.NewRouter(world)
//	scene.SetEntityStore(router.Store())
//	router.Tag(marker, "marker", "MirrorCityScreen")
//	router.Handle("marker", stage.EventClick, func(t ecs.Target, e stage.InteractionEvent) {
//		manager.Start(t.Key)
//	})
//	scene.OnUpdate(func(float64) { router.Process() })
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
