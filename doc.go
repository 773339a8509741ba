// Package indoornav turns spoken requests into walking routes through a
// multi-floor building.
//
// A request such as "请带我去三楼302教室" flows through:
//
//	standardize/  canonical location strings ("三零二" → "3楼302教室")
//	parser/       navigate / search / unparseable, plus the destination
//	core/         the building graph: nodes, corridors, named locations
//	dijkstra/     congestion-aware shortest path, cost d/(1-f)
//	directions/   "向东走20.0米", "乘电梯上到3楼", segments, time estimate
//	navigator/    the whole pipeline behind one ComputeRoute call
//
// Around the core:
//
//	building/     HCL files, Neo4j and synthetic towers → validated graph
//	bfs/          hop-count reachability used by building validation
//	congestion/   immutable snapshots, levels and the NATS update feed
//	server/       HTTP API (gin), metrics, tracing, rate limiting
//	cmd/navd      the service
//	cmd/navctl    the command-line tool
//
// Quick example:
//
//	g, _ := building.Tower().Build()
//	nav, _ := navigator.New(g)
//	res, _ := nav.ComputeRoute("去三楼302教室", "", congestion.Snapshot{})
//	fmt.Println(res.Instructions)
package indoornav
