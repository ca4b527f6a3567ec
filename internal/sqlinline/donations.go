package sqlinline

const QExportDonations = `--sql 8d7e02c3-5b14-4e8e-b6d2-f1a0c93e6a55
select d.id, d.user_id, coalesce(u.name, d.donor_name, '') as donor,
       d.amount, d.message, d.donation_date, d.created_at
from donations d
left join users u on u.id = d.user_id
order by d.created_at;
`

const QExportUserTotals = `--sql 6b2a9c41-30df-47c9-9a4e-52e7d08b913c
select id, email, name, total_donations
from users
order by total_donations desc, id;
`
