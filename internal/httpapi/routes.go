package httpapi

func (s *Server) routes() {
	s.router.GET("/", s.handleIndex)

	s.router.POST("/generateKeys", s.handleGenerateKeys)
	s.router.POST("/ballot", s.handleCreateBallot)
	s.router.GET("/ballot", s.handleLoadBallot)

	s.router.POST("/create-election", s.handleCreateElection)
	s.router.GET("/election", s.handleElectionExists)

	s.router.POST("/vote", s.handleVote)
	s.router.POST("/broadcast-vote", s.handleBroadcastVote)

	s.router.POST("/mine", s.handleMine)
	s.router.POST("/broadcast-block", s.handleBroadcastBlock)
	s.router.POST("/resolve-conflicts", s.handleResolveConflicts)

	s.router.GET("/chain", s.handleChain)
	s.router.POST("/votes", s.handleVotes)

	s.router.POST("/balance", s.handleBalance)
	s.router.POST("/vote-eligibility", s.handleVoteEligibility)
	s.router.POST("/totalmines", s.handleTotalMines)
	s.router.POST("/results", s.handleResults)
	s.router.POST("/results-voters", s.handleResultsVoters)

	s.router.POST("/node", s.handleAddNode)
	s.router.DELETE("/node", s.handleRemoveNode)
	s.router.GET("/nodes", s.handleListNodes)
}
