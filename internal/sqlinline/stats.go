package sqlinline

const QStatsSummary = `--sql 4c1f4f6e-9d2a-41bd-8a07-c4a55b3f2d18
select
  (select count(*) from users),
  (select count(*) from events),
  (select count(*) from event_registrations),
  (select count(*) from program_enrollments where status = 'active'),
  (select count(*) from donations),
  (select coalesce(sum(amount), 0) from donations);
`
