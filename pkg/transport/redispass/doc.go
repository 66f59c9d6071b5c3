// Package redispass carries layout passes between processes over Redis
// pub/sub.
//
// A host process that lays out its own UI publishes each completed pass as a
// frames document (see package io). An inspector process subscribes to the
// same channel and feeds every decoded pass into its recorder, so the overlay
// follows the host live:
//
//	pub := redispass.NewPublisher(client, "framescope:passes", logger)
//	_ = pub.Publish(ctx, io.FromSet(set, 320, 480))
//
//	sub := redispass.NewSubscriber(client, "framescope:passes", rec, logger)
//	err := sub.Run(ctx) // blocks until ctx is cancelled
//
// Messages that fail to decode are logged and skipped; they never stop the
// subscriber.
package redispass
